package trees

import (
	"context"

	"ecoscan/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, tree *models.Tree) (*models.Tree, error)
	// GetByIDAndUser folds existence and ownership into one lookup so a
	// missing row and another user's row are indistinguishable to callers.
	GetByIDAndUser(ctx context.Context, id, userID string) (*models.Tree, error)
	DeleteByIDAndUser(ctx context.Context, id, userID string) error
	ListByUser(ctx context.Context, userID string) ([]*models.Tree, error)
	CountByUser(ctx context.Context, userID string) (int, error)
	SumRewardsByUser(ctx context.Context, userID string) (int, error)
}
