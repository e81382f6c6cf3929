package trees

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"ecoscan/internal/common"
	"ecoscan/internal/dbx"
	"ecoscan/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) Create(ctx context.Context, tree *models.Tree) (*models.Tree, error) {

	query :=
		`INSERT INTO trees (user_id, image_path, rewards_earned, classifier_response)
         VALUES ($1, $2, $3, $4)
		 RETURNING id, planted_at
		 `

	err := r.db.QueryRowContext(ctx, query,
		tree.UserID, tree.ImagePath, tree.RewardsEarned, tree.ClassifierResponse).
		Scan(&tree.ID, &tree.PlantedAt)

	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return tree, nil
}

func (r *PostgresRepository) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Tree, error) {
	query :=
		`SELECT id, user_id, image_path, rewards_earned, classifier_response, planted_at FROM trees
		 WHERE id = $1 AND user_id = $2
		 `

	tree := &models.Tree{}
	var response sql.NullString
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&tree.ID, &tree.UserID, &tree.ImagePath, &tree.RewardsEarned, &response, &tree.PlantedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}
	tree.ClassifierResponse = response.String

	return tree, nil
}

func (r *PostgresRepository) DeleteByIDAndUser(ctx context.Context, id, userID string) error {
	query :=
		`DELETE FROM trees
		 WHERE id = $1 AND user_id = $2
		 `

	res, err := r.db.ExecContext(ctx, query, id, userID)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) ListByUser(ctx context.Context, userID string) ([]*models.Tree, error) {
	query :=
		`SELECT id, user_id, image_path, rewards_earned, classifier_response, planted_at FROM trees
		 WHERE user_id = $1
		 ORDER BY planted_at DESC
		 `

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	defer rows.Close()

	var result []*models.Tree
	for rows.Next() {
		tree := &models.Tree{}
		var response sql.NullString
		if err := rows.Scan(&tree.ID, &tree.UserID, &tree.ImagePath, &tree.RewardsEarned, &response, &tree.PlantedAt); err != nil {
			return nil, fmt.Errorf("db error: %w", err)
		}
		tree.ClassifierResponse = response.String
		result = append(result, tree)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}

	return result, nil
}

func (r *PostgresRepository) CountByUser(ctx context.Context, userID string) (int, error) {
	query :=
		`SELECT COUNT(*) FROM trees
		 WHERE user_id = $1
		 `

	var n int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return n, nil
}

func (r *PostgresRepository) SumRewardsByUser(ctx context.Context, userID string) (int, error) {
	query :=
		`SELECT COALESCE(SUM(rewards_earned), 0) FROM trees
		 WHERE user_id = $1
		 `

	var sum int
	if err := r.db.QueryRowContext(ctx, query, userID).Scan(&sum); err != nil {
		return 0, fmt.Errorf("db error: %w", err)
	}

	return sum, nil
}
