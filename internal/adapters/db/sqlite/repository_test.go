package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/d00415697/Social-Network/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRepo(t *testing.T) (*SocialRepository, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "face_test.db")
	db, err := Initialize(context.Background(), path)
	require.NoError(t, err)
	return NewSocialRepository(db), path
}

func TestOpenMissingStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.db")

	_, err := Open(path, false)
	require.ErrorIs(t, err, domain.ErrNotInitialized)

	_, err = Initialize(context.Background(), path)
	require.NoError(t, err)

	_, err = Open(path, false)
	require.NoError(t, err)
}

func TestInitializeStartsEmpty(t *testing.T) {
	ctx := context.Background()
	repo, path := newTestRepo(t)

	_, err := repo.CreateUser(ctx, "a@x")
	require.NoError(t, err)

	db, err := Initialize(ctx, path)
	require.NoError(t, err)

	users, err := NewSocialRepository(db).ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestTeardown(t *testing.T) {
	_, path := newTestRepo(t)

	require.NoError(t, Teardown(path))
	require.ErrorIs(t, Teardown(path), domain.ErrNotInitialized)

	_, err := Open(path, false)
	require.ErrorIs(t, err, domain.ErrNotInitialized)
}

func TestRunAtomicRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	sentinel := errors.New("boom")
	err := repo.RunAtomic(ctx, func(tx domain.SocialRepository) error {
		if _, err := tx.CreateUser(ctx, "a@x"); err != nil {
			return err
		}
		if _, err := tx.CreateAccount(ctx, "alice", "a@x"); err != nil {
			return err
		}
		return sentinel
	})
	require.ErrorIs(t, err, sentinel)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users)

	accounts, err := repo.ListAccounts(ctx)
	require.NoError(t, err)
	assert.Empty(t, accounts)
}

func TestUniqueConstraintsReportConflict(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	_, err := repo.CreateUser(ctx, "a@x")
	require.NoError(t, err)
	_, err = repo.CreateUser(ctx, "a@x")
	require.ErrorIs(t, err, domain.ErrConflict)

	_, err = repo.CreateAccount(ctx, "alice", "a@x")
	require.NoError(t, err)
	_, err = repo.CreateAccount(ctx, "alice", "other@x")
	require.ErrorIs(t, err, domain.ErrConflict)
}

func TestUniqueFollowAndLikePairs(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	alice, err := repo.CreateAccount(ctx, "alice", "a@x")
	require.NoError(t, err)
	bob, err := repo.CreateAccount(ctx, "bob", "b@x")
	require.NoError(t, err)

	require.NoError(t, repo.CreateFollowEdge(ctx, alice.ID, bob.ID))
	require.ErrorIs(t, repo.CreateFollowEdge(ctx, alice.ID, bob.ID), domain.ErrConflict)

	// The reverse direction is a different ordered pair.
	require.NoError(t, repo.CreateFollowEdge(ctx, bob.ID, alice.ID))

	post, err := repo.CreatePost(ctx, bob.ID, "hi")
	require.NoError(t, err)

	require.NoError(t, repo.CreateLikeEdge(ctx, alice.ID, post.ID))
	require.ErrorIs(t, repo.CreateLikeEdge(ctx, alice.ID, post.ID), domain.ErrConflict)
}

func TestListFollowEdgesOrder(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	a, _ := repo.CreateAccount(ctx, "a", "a@x")
	b, _ := repo.CreateAccount(ctx, "b", "b@x")
	c, _ := repo.CreateAccount(ctx, "c", "c@x")

	require.NoError(t, repo.CreateFollowEdge(ctx, c.ID, a.ID))
	require.NoError(t, repo.CreateFollowEdge(ctx, a.ID, c.ID))
	require.NoError(t, repo.CreateFollowEdge(ctx, a.ID, b.ID))

	edges, err := repo.ListFollowEdges(ctx)
	require.NoError(t, err)
	require.Len(t, edges, 3)
	assert.Equal(t, []uint{a.ID, a.ID, c.ID}, []uint{edges[0].FollowerID, edges[1].FollowerID, edges[2].FollowerID})
	assert.Equal(t, []uint{b.ID, c.ID, a.ID}, []uint{edges[0].FollowedID, edges[1].FollowedID, edges[2].FollowedID})
}

func TestPostsByPopularityOrder(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	owner, err := repo.CreateAccount(ctx, "owner", "o@x")
	require.NoError(t, err)

	p1, _ := repo.CreatePost(ctx, owner.ID, "first")
	p2, _ := repo.CreatePost(ctx, owner.ID, "second")
	p3, _ := repo.CreatePost(ctx, owner.ID, "third")

	require.NoError(t, repo.AdjustPostLikes(ctx, p1.ID, 3))
	require.NoError(t, repo.AdjustPostLikes(ctx, p2.ID, 5))
	require.NoError(t, repo.AdjustPostLikes(ctx, p3.ID, 5))

	ranked, err := repo.PostsByPopularity(ctx)
	require.NoError(t, err)
	require.Len(t, ranked, 3)
	assert.Equal(t, []uint{p2.ID, p3.ID, p1.ID}, []uint{ranked[0].ID, ranked[1].ID, ranked[2].ID})
}

func TestAdjustPostLikes(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	owner, err := repo.CreateAccount(ctx, "owner", "o@x")
	require.NoError(t, err)
	post, err := repo.CreatePost(ctx, owner.ID, "hi")
	require.NoError(t, err)
	assert.Equal(t, 0, post.Likes)

	require.NoError(t, repo.AdjustPostLikes(ctx, post.ID, 1))
	require.NoError(t, repo.AdjustPostLikes(ctx, post.ID, 1))
	require.NoError(t, repo.AdjustPostLikes(ctx, post.ID, -1))

	got, err := repo.GetPost(ctx, post.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, got.Likes)
}

func TestGetPostMissing(t *testing.T) {
	repo, _ := newTestRepo(t)

	_, err := repo.GetPost(context.Background(), 999)
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, domain.KindPost, notFound.Kind)
	assert.Equal(t, uint(999), notFound.ID)
}

func TestInterestInAccount(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	owner, _ := repo.CreateAccount(ctx, "owner", "o@x")
	larry, _ := repo.CreateAccount(ctx, "larry", "l@x")
	mary, _ := repo.CreateAccount(ctx, "mary", "m@x")

	p1, _ := repo.CreatePost(ctx, owner.ID, "first")
	p2, _ := repo.CreatePost(ctx, owner.ID, "second")

	require.NoError(t, repo.CreateLikeEdge(ctx, larry.ID, p1.ID))
	require.NoError(t, repo.CreateLikeEdge(ctx, larry.ID, p2.ID))
	require.NoError(t, repo.CreateLikeEdge(ctx, mary.ID, p1.ID))

	rows, err := repo.InterestInAccount(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, larry.ID, rows[0].LikerID)
	assert.Equal(t, "larry", rows[0].LikerUsername)
	assert.Equal(t, 2, rows[0].Likes)

	assert.Equal(t, mary.ID, rows[1].LikerID)
	assert.Equal(t, "mary", rows[1].LikerUsername)
	assert.Equal(t, 1, rows[1].Likes)

	// An account with no posts yields an empty result, not an error.
	empty, err := repo.InterestInAccount(ctx, larry.ID)
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestAccountsByEmail(t *testing.T) {
	ctx := context.Background()
	repo, _ := newTestRepo(t)

	first, _ := repo.CreateAccount(ctx, "first", "shared@x")
	second, _ := repo.CreateAccount(ctx, "second", "shared@x")
	_, _ = repo.CreateAccount(ctx, "third", "other@x")

	accounts, err := repo.AccountsByEmail(ctx, "shared@x")
	require.NoError(t, err)
	require.Len(t, accounts, 2)
	assert.Equal(t, first.ID, accounts[0].ID)
	assert.Equal(t, second.ID, accounts[1].ID)
}
