package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"ecoscan/internal/common"
	"ecoscan/internal/dbx"
	"ecoscan/internal/logging"
	"ecoscan/internal/server/classifier"
	"ecoscan/internal/server/models"
	"ecoscan/internal/server/repositories/repomanager"
	"ecoscan/internal/server/storage"
)

// User-facing messages for the verification flow. The reward message embeds
// the amount, which the frontend surfaces verbatim.
const (
	msgRejected        = "The image does not appear to show a newly planted tree or plant. Please upload a valid image."
	msgProcessingError = "An error occurred while processing your image. Please try again."
	msgSaveError       = "An error occurred while saving your reward. Please try again."
)

// VerificationResult is the terminal outcome of one plant-tree submission.
// Remote and transaction faults arrive here as Accepted=false with a
// user-facing message, never as a crash.
type VerificationResult struct {
	Accepted bool
	Verdict  classifier.VerdictKind
	Reward   int
	Message  string
	// NewTotal is the account's reward total after acceptance.
	NewTotal int
}

// DeletionResult reports the account state after a tree record is removed.
type DeletionResult struct {
	NewTotal       int
	RemainingTrees int
}

// TreeService owns the planting-verification and deletion flows: it is the
// only mutator of the reward ledger.
type TreeService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	storage     storage.Storage
	classifier  classifier.Classifier
	logger      logging.Logger
}

func NewTreeService(db *sql.DB, m repomanager.RepositoryManager, st storage.Storage, cl classifier.Classifier, logger logging.Logger) *TreeService {
	return &TreeService{
		db:          db,
		repomanager: m,
		storage:     st,
		classifier:  cl,
		logger:      logger.With("component", "trees"),
	}
}

// VerifyPlanting runs the full plant-tree flow: persist the image, ask the
// classifier, parse the verdict, and on acceptance commit the tree record
// and the reward increment as one transaction.
//
// The remote call happens before any transaction is opened so classifier
// latency never holds a database transaction. Classifier failures are
// converted into a rejection result (fail-soft), not propagated.
func (s *TreeService) VerifyPlanting(ctx context.Context, userID, filename string, data []byte, mimeType string) (*VerificationResult, error) {
	if len(data) == 0 {
		return nil, common.ErrorValidation
	}

	key, err := s.storage.Save(ctx, filename, data)
	if err != nil {
		return nil, fmt.Errorf("error storing upload: %w", err)
	}

	response, err := s.classifier.Classify(ctx, classifier.Image{Data: data, MIMEType: mimeType}, classifier.PlantingVerificationPrompt)
	if err != nil {
		s.logger.Error(ctx, "classifier call failed", "error", err)
		s.discardImage(ctx, key)
		return &VerificationResult{Accepted: false, Verdict: classifier.VerdictNone, Message: msgProcessingError}, nil
	}

	verdict := classifier.ParseVerdict(response)
	if !verdict.Accepted() {
		s.discardImage(ctx, key)
		return &VerificationResult{Accepted: false, Verdict: verdict.Kind, Message: msgRejected}, nil
	}

	reward := verdict.Reward()

	var newTotal int
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		_, err := s.repomanager.Trees(tx).Create(ctx, &models.Tree{
			UserID:             userID,
			ImagePath:          key,
			RewardsEarned:      reward,
			ClassifierResponse: response,
		})
		if err != nil {
			return err
		}

		newTotal, err = s.repomanager.Users(tx).AddRewards(ctx, userID, reward)
		return err
	})
	if err != nil {
		s.logger.Error(ctx, "reward transaction failed", "error", err, "user_id", userID)
		s.discardImage(ctx, key)
		return &VerificationResult{Accepted: false, Verdict: verdict.Kind, Message: msgSaveError}, nil
	}

	s.logger.Info(ctx, "planting verified", "user_id", userID, "verdict", verdict.Kind, "reward", reward)

	return &VerificationResult{
		Accepted: true,
		Verdict:  verdict.Kind,
		Reward:   reward,
		Message:  fmt.Sprintf("Congratulations! You earned %d rewards for your %s!", reward, strings.ToLower(string(verdict.Kind))),
		NewTotal: newTotal,
	}, nil
}

// DeleteTree removes one of the caller's tree records, decrementing the
// reward total by the stored amount in the same transaction. A record that
// does not exist or belongs to someone else is the same common.ErrorNotFound.
// The backing image is removed after commit; a missing file is fine.
func (s *TreeService) DeleteTree(ctx context.Context, userID, treeID string) (*DeletionResult, error) {
	result := &DeletionResult{}
	var imagePath string

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		treeRepo := s.repomanager.Trees(tx)

		tree, err := treeRepo.GetByIDAndUser(ctx, treeID, userID)
		if err != nil {
			return err
		}
		imagePath = tree.ImagePath

		if err := treeRepo.DeleteByIDAndUser(ctx, treeID, userID); err != nil {
			return err
		}

		result.NewTotal, err = s.repomanager.Users(tx).AddRewards(ctx, userID, -tree.RewardsEarned)
		if err != nil {
			return err
		}

		result.RemainingTrees, err = treeRepo.CountByUser(ctx, userID)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		s.logger.Error(ctx, "tree deletion failed", "error", err, "user_id", userID, "tree_id", treeID)
		return nil, fmt.Errorf("%w: %v", common.ErrorTransaction, err)
	}

	s.discardImage(ctx, imagePath)

	return result, nil
}

// ListTrees returns the caller's trees, newest first.
func (s *TreeService) ListTrees(ctx context.Context, userID string) ([]*models.Tree, error) {
	return s.repomanager.Trees(s.db).ListByUser(ctx, userID)
}

func (s *TreeService) discardImage(ctx context.Context, key string) {
	if key == "" {
		return
	}
	if err := s.storage.Remove(ctx, key); err != nil {
		s.logger.Warn(ctx, "could not remove stored image", "key", key, "error", err)
	}
}
