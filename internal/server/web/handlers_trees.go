package web

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"ecoscan/internal/common"
)

// plantTreeResponse is the envelope the planting form's script consumes.
type plantTreeResponse struct {
	Success  bool    `json:"success"`
	Message  string  `json:"message"`
	Redirect *string `json:"redirect"`
}

// deleteTreeResponse answers the dashboard's remove button on success.
// Failures carry only success and message.
type deleteTreeResponse struct {
	Success        bool   `json:"success"`
	Message        string `json:"message"`
	NewTotal       int    `json:"new_total"`
	RemainingTrees int    `json:"remaining_trees"`
}

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (s *Server) handlePlantTreePage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "plant_tree.html", nil)
}

// handlePlantTree runs the verification flow and reports the outcome as
// JSON. Rejections and processing faults are success=false with a
// user-facing message; only malformed requests fail at the HTTP level.
func (s *Server) handlePlantTree(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r.Context())

	filename, data, mimeType, ok, err := readImageForm(r)
	if err != nil || !ok {
		writeJSON(w, http.StatusBadRequest, plantTreeResponse{
			Success: false,
			Message: "No image uploaded",
		})
		return
	}

	result, err := s.trees.VerifyPlanting(r.Context(), userID, filename, data, mimeType)
	if err != nil {
		s.logger.Error(r.Context(), "planting verification failed", "error", err, "user_id", userID)
		writeJSON(w, http.StatusBadRequest, plantTreeResponse{
			Success: false,
			Message: "No image uploaded",
		})
		return
	}

	resp := plantTreeResponse{Success: result.Accepted, Message: result.Message}
	if result.Accepted {
		redirect := "/dashboard"
		resp.Redirect = &redirect
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleDeleteTree(w http.ResponseWriter, r *http.Request) {
	userID := currentUserID(r.Context())
	treeID := chi.URLParam(r, "id")

	result, err := s.trees.DeleteTree(r.Context(), userID, treeID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse{Message: "Tree not found"})
			return
		}
		s.logger.Error(r.Context(), "tree removal failed", "error", err, "user_id", userID, "tree_id", treeID)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Message: "Error removing tree"})
		return
	}

	writeJSON(w, http.StatusOK, deleteTreeResponse{
		Success:        true,
		Message:        "Tree removed successfully",
		NewTotal:       result.NewTotal,
		RemainingTrees: result.RemainingTrees,
	})
}
