package web

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/go-chi/chi/v5"
)

// maxUploadBytes caps the multipart body of image uploads.
const maxUploadBytes = 10 << 20

// readImageForm pulls the "image" file out of a multipart form. An absent or
// empty file returns ok=false and the caller sends the browser back to the
// form.
func readImageForm(r *http.Request) (filename string, data []byte, mimeType string, ok bool, err error) {
	r.Body = http.MaxBytesReader(nil, r.Body, maxUploadBytes)
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		return "", nil, "", false, err
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return "", nil, "", false, nil
	}
	defer file.Close()

	if header.Filename == "" {
		return "", nil, "", false, nil
	}

	data, err = io.ReadAll(file)
	if err != nil {
		return "", nil, "", false, err
	}
	if len(data) == 0 {
		return "", nil, "", false, nil
	}

	mimeType = header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = http.DetectContentType(data)
	}

	return header.Filename, data, mimeType, true, nil
}

func (s *Server) handleUploadPage(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, "upload.html", nil)
}

// handleUpload runs the recycling-tip flow: store the image, generate the
// description, open a chat session, and send the browser to /chat.
func (s *Server) handleUpload(w http.ResponseWriter, r *http.Request) {
	filename, data, mimeType, ok, err := readImageForm(r)
	if err != nil {
		s.logger.Warn(r.Context(), "bad upload form", "error", err)
		setFlash(w, "Could not read the uploaded file")
		http.Redirect(w, r, "/upload", http.StatusSeeOther)
		return
	}
	if !ok {
		http.Redirect(w, r, "/upload", http.StatusSeeOther)
		return
	}

	session, err := s.chat.StartFromUpload(r.Context(), filename, data, mimeType)
	if err != nil {
		s.logger.Error(r.Context(), "recycling-tip flow failed", "error", err)
		setFlash(w, "Could not analyze the image. Please try again.")
		http.Redirect(w, r, "/upload", http.StatusSeeOther)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     chatCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, "/chat", http.StatusSeeOther)
}

// handleImage serves a stored upload back to the browser. Keys are generated
// server-side, so anything that fails to load is just a 404.
func (s *Server) handleImage(w http.ResponseWriter, r *http.Request) {
	key := chi.URLParam(r, "key")

	data, err := s.storage.Open(r.Context(), key)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	contentType := mime.TypeByExtension(filepath.Ext(key))
	if contentType == "" {
		contentType = http.DetectContentType(data)
	}
	w.Header().Set("Content-Type", contentType)
	_, _ = w.Write(data)
}
