package services

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"

	"ecoscan/internal/dbx"
	"ecoscan/internal/logging"
	"ecoscan/internal/server/classifier"
	"ecoscan/internal/server/models"
	"ecoscan/internal/server/repositories/trees"
	"ecoscan/internal/server/repositories/users"
)

// --- shared helpers ---

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

func testLogger() logging.Logger {
	return logging.NewJSON()
}

// fakeRepoManager hands out canned repositories regardless of the DBTX.
type fakeRepoManager struct {
	users users.Repository
	trees trees.Repository
}

func (f *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (f *fakeRepoManager) Users(dbx.DBTX) users.Repository              { return f.users }
func (f *fakeRepoManager) Trees(dbx.DBTX) trees.Repository              { return f.trees }

type fakeUsersRepo struct {
	createOut *models.User
	createErr error

	getOut *models.User
	getErr error

	addRewardsTotal int
	addRewardsErr   error
	addRewardsCalls []int
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.createOut, nil
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) GetByID(ctx context.Context, id string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeUsersRepo) AddRewards(ctx context.Context, id string, delta int) (int, error) {
	if f.addRewardsErr != nil {
		return 0, f.addRewardsErr
	}
	f.addRewardsCalls = append(f.addRewardsCalls, delta)
	f.addRewardsTotal += delta
	return f.addRewardsTotal, nil
}

type fakeTreesRepo struct {
	createOut   *models.Tree
	createErr   error
	createCalls []*models.Tree

	getOut *models.Tree
	getErr error

	deleteErr   error
	deleteCalls int

	listOut []*models.Tree
	listErr error

	count    int
	countErr error

	sum    int
	sumErr error
}

func (f *fakeTreesRepo) Create(ctx context.Context, tree *models.Tree) (*models.Tree, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.createCalls = append(f.createCalls, tree)
	if f.createOut != nil {
		return f.createOut, nil
	}
	return tree, nil
}

func (f *fakeTreesRepo) GetByIDAndUser(ctx context.Context, id, userID string) (*models.Tree, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.getOut, nil
}

func (f *fakeTreesRepo) DeleteByIDAndUser(ctx context.Context, id, userID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleteCalls++
	return nil
}

func (f *fakeTreesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Tree, error) {
	return f.listOut, f.listErr
}

func (f *fakeTreesRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	return f.count, f.countErr
}

func (f *fakeTreesRepo) SumRewardsByUser(ctx context.Context, userID string) (int, error) {
	return f.sum, f.sumErr
}

// fakeClassifier returns a canned response or error.
type fakeClassifier struct {
	response string
	err      error
	prompts  []string
}

func (f *fakeClassifier) Classify(ctx context.Context, image classifier.Image, prompt string) (string, error) {
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

// fakeStorage records saves and removals in memory.
type fakeStorage struct {
	saveErr error
	objects map[string][]byte
	removed []string
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) Save(ctx context.Context, name string, data []byte) (string, error) {
	if f.saveErr != nil {
		return "", f.saveErr
	}
	key := "key_" + name
	f.objects[key] = data
	return key, nil
}

func (f *fakeStorage) Remove(ctx context.Context, key string) error {
	f.removed = append(f.removed, key)
	delete(f.objects, key)
	return nil
}

func (f *fakeStorage) Open(ctx context.Context, key string) ([]byte, error) {
	data, ok := f.objects[key]
	if !ok {
		return nil, errors.New("no such object")
	}
	return data, nil
}
