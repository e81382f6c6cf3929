package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ecoscan/internal/common"
	"ecoscan/internal/server/classifier"
	"ecoscan/internal/server/models"
)

func newTreeService(t *testing.T, users *fakeUsersRepo, trees *fakeTreesRepo, st *fakeStorage, cl *fakeClassifier) (*TreeService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock := newSQLMockDB(t)
	rm := &fakeRepoManager{users: users, trees: trees}
	return NewTreeService(db, rm, st, cl, testLogger()), mock
}

func TestVerifyPlanting_TreeAccepted(t *testing.T) {
	usersRepo := &fakeUsersRepo{}
	treesRepo := &fakeTreesRepo{}
	st := newFakeStorage()
	cl := &fakeClassifier{response: "TYPE: TREE\nREASON: fresh soil"}

	svc, mock := newTreeService(t, usersRepo, treesRepo, st, cl)
	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.VerifyPlanting(context.Background(), "u1", "tree.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, classifier.VerdictTree, res.Verdict)
	assert.Equal(t, 3, res.Reward)
	assert.Contains(t, res.Message, "3")
	assert.Equal(t, 3, res.NewTotal)

	require.Len(t, treesRepo.createCalls, 1)
	created := treesRepo.createCalls[0]
	assert.Equal(t, "u1", created.UserID)
	assert.Equal(t, 3, created.RewardsEarned)
	assert.Equal(t, "TYPE: TREE\nREASON: fresh soil", created.ClassifierResponse)
	assert.Equal(t, []int{3}, usersRepo.addRewardsCalls)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPlanting_PlantAccepted(t *testing.T) {
	usersRepo := &fakeUsersRepo{addRewardsTotal: 4}
	treesRepo := &fakeTreesRepo{}
	st := newFakeStorage()
	cl := &fakeClassifier{response: "type: plant\nreason: seedling"}

	svc, mock := newTreeService(t, usersRepo, treesRepo, st, cl)
	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.VerifyPlanting(context.Background(), "u1", "plant.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.True(t, res.Accepted)
	assert.Equal(t, classifier.VerdictPlant, res.Verdict)
	assert.Equal(t, 1, res.Reward)
	assert.Equal(t, 5, res.NewTotal)
}

func TestVerifyPlanting_RejectedNoMutation(t *testing.T) {
	usersRepo := &fakeUsersRepo{}
	treesRepo := &fakeTreesRepo{}
	st := newFakeStorage()
	cl := &fakeClassifier{response: "TYPE: NO\nREASON: no plant visible"}

	svc, mock := newTreeService(t, usersRepo, treesRepo, st, cl)

	res, err := svc.VerifyPlanting(context.Background(), "u1", "cat.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.False(t, res.Accepted)
	assert.Equal(t, classifier.VerdictNone, res.Verdict)
	assert.Empty(t, treesRepo.createCalls, "no tree record on rejection")
	assert.Empty(t, usersRepo.addRewardsCalls, "no reward mutation on rejection")
	assert.Empty(t, st.objects, "rejected upload is discarded")

	// No transaction was opened at all.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestVerifyPlanting_ClassifierFailureIsSoft(t *testing.T) {
	usersRepo := &fakeUsersRepo{}
	treesRepo := &fakeTreesRepo{}
	st := newFakeStorage()
	cl := &fakeClassifier{err: common.ErrorRemoteService}

	svc, _ := newTreeService(t, usersRepo, treesRepo, st, cl)

	res, err := svc.VerifyPlanting(context.Background(), "u1", "tree.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err, "remote failure must convert to a rejection result")

	assert.False(t, res.Accepted)
	assert.Equal(t, msgProcessingError, res.Message)
	assert.Empty(t, treesRepo.createCalls)
	assert.Empty(t, usersRepo.addRewardsCalls)
}

func TestVerifyPlanting_EmptyPayload(t *testing.T) {
	svc, _ := newTreeService(t, &fakeUsersRepo{}, &fakeTreesRepo{}, newFakeStorage(), &fakeClassifier{})

	_, err := svc.VerifyPlanting(context.Background(), "u1", "x.jpg", nil, "image/jpeg")
	assert.True(t, errors.Is(err, common.ErrorValidation))
}

func TestVerifyPlanting_TransactionFailureIsSoft(t *testing.T) {
	usersRepo := &fakeUsersRepo{}
	treesRepo := &fakeTreesRepo{createErr: errors.New("insert failed")}
	st := newFakeStorage()
	cl := &fakeClassifier{response: "TYPE: TREE"}

	svc, mock := newTreeService(t, usersRepo, treesRepo, st, cl)
	mock.ExpectBegin()
	mock.ExpectRollback()

	res, err := svc.VerifyPlanting(context.Background(), "u1", "tree.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)

	assert.False(t, res.Accepted)
	assert.Equal(t, msgSaveError, res.Message)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTree_Success(t *testing.T) {
	usersRepo := &fakeUsersRepo{addRewardsTotal: 5}
	treesRepo := &fakeTreesRepo{
		getOut: &models.Tree{ID: "t1", UserID: "u1", ImagePath: "key_tree.jpg", RewardsEarned: 3},
		count:  1,
	}
	st := newFakeStorage()
	st.objects["key_tree.jpg"] = []byte("img")

	svc, mock := newTreeService(t, usersRepo, treesRepo, st, &fakeClassifier{})
	mock.ExpectBegin()
	mock.ExpectCommit()

	res, err := svc.DeleteTree(context.Background(), "u1", "t1")
	require.NoError(t, err)

	assert.Equal(t, 2, res.NewTotal, "total 5 minus reward 3")
	assert.Equal(t, 1, res.RemainingTrees)
	assert.Equal(t, []int{-3}, usersRepo.addRewardsCalls)
	assert.Equal(t, 1, treesRepo.deleteCalls)
	assert.Equal(t, []string{"key_tree.jpg"}, st.removed, "backing image removed after commit")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteTree_NotOwnedIsNotFound(t *testing.T) {
	usersRepo := &fakeUsersRepo{}
	treesRepo := &fakeTreesRepo{getErr: common.ErrorNotFound}

	svc, mock := newTreeService(t, usersRepo, treesRepo, newFakeStorage(), &fakeClassifier{})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.DeleteTree(context.Background(), "u2", "t1")
	assert.True(t, errors.Is(err, common.ErrorNotFound))
	assert.Empty(t, usersRepo.addRewardsCalls, "no mutation for a foreign record")
}

func TestDeleteTree_TransactionFailure(t *testing.T) {
	usersRepo := &fakeUsersRepo{addRewardsErr: errors.New("update failed")}
	treesRepo := &fakeTreesRepo{
		getOut: &models.Tree{ID: "t1", UserID: "u1", ImagePath: "key.jpg", RewardsEarned: 3},
	}
	st := newFakeStorage()

	svc, mock := newTreeService(t, usersRepo, treesRepo, st, &fakeClassifier{})
	mock.ExpectBegin()
	mock.ExpectRollback()

	_, err := svc.DeleteTree(context.Background(), "u1", "t1")
	assert.True(t, errors.Is(err, common.ErrorTransaction))
	assert.Empty(t, st.removed, "image stays when the transaction rolls back")
}

// Ledger invariant: after a verify+delete sequence the account total equals
// the sum of rewards over its remaining trees.
func TestRewardLedgerInvariant(t *testing.T) {
	usersRepo := &fakeUsersRepo{}
	treesRepo := &fakeTreesRepo{}
	st := newFakeStorage()
	cl := &fakeClassifier{response: "TYPE: TREE"}

	svc, mock := newTreeService(t, usersRepo, treesRepo, st, cl)

	// Two verifications: tree (3) then plant (1).
	mock.ExpectBegin()
	mock.ExpectCommit()
	res1, err := svc.VerifyPlanting(context.Background(), "u1", "a.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)
	require.True(t, res1.Accepted)

	cl.response = "TYPE: PLANT"
	mock.ExpectBegin()
	mock.ExpectCommit()
	res2, err := svc.VerifyPlanting(context.Background(), "u1", "b.jpg", []byte("img"), "image/jpeg")
	require.NoError(t, err)
	require.True(t, res2.Accepted)
	assert.Equal(t, 4, res2.NewTotal)

	// Delete the tree record; total drops to the plant's reward.
	treesRepo.getOut = &models.Tree{ID: "t1", UserID: "u1", ImagePath: treesRepo.createCalls[0].ImagePath, RewardsEarned: 3}
	treesRepo.count = 1
	mock.ExpectBegin()
	mock.ExpectCommit()
	res3, err := svc.DeleteTree(context.Background(), "u1", "t1")
	require.NoError(t, err)

	assert.Equal(t, 1, res3.NewTotal)
	sum := 0
	for _, c := range treesRepo.createCalls[1:] {
		sum += c.RewardsEarned
	}
	assert.Equal(t, sum, res3.NewTotal, "total equals sum of remaining tree rewards")
}
