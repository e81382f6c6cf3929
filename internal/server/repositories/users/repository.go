package users

import (
	"context"

	"ecoscan/internal/server/models"
)

type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	// AddRewards atomically adjusts total_rewards by delta (may be negative)
	// and returns the new total.
	AddRewards(ctx context.Context, id string, delta int) (int, error)
}
