package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/testutil"
)

func TestLikeIsUniquePerPair(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewLikeRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, created)
	created, err = repo.Create(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.False(t, created)

	n, err := repo.Count(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	require.NoError(t, repo.Delete(ctx, "p1", "u1"))
	require.NoError(t, repo.Delete(ctx, "p1", "u1"))
	ok, err := repo.Exists(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestViewCreateIfAbsent(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewViewRepository(db)
	ctx := context.Background()

	added, err := repo.CreateIfAbsent(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = repo.CreateIfAbsent(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.False(t, added)

	views, err := repo.ListByPost(ctx, "p1")
	require.NoError(t, err)
	require.Len(t, views, 1)
	require.NotNil(t, views[0].UserID)
	assert.Equal(t, "u1", *views[0].UserID)
}

func TestCommentLikeCounter(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewCommentRepository(db)
	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, &model.Comment{ID: "c1", PostID: "p1", AuthorID: "u1", Content: "hi"}))

	added, err := repo.AddLike(ctx, "c1", "u2")
	require.NoError(t, err)
	assert.True(t, added)
	added, err = repo.AddLike(ctx, "c1", "u2")
	require.NoError(t, err)
	assert.False(t, added)

	c, err := repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 1, c.LikeCount)

	// 计数被外部改成 0 时也不能减成负数
	require.NoError(t, db.Model(&model.Comment{}).Where("id = ?", "c1").Update("like_count", 0).Error)
	removed, err := repo.RemoveLike(ctx, "c1", "u2")
	require.NoError(t, err)
	assert.True(t, removed)
	c, err = repo.GetByID(ctx, "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, c.LikeCount)

	_, err = repo.GetOwned(ctx, "c1", "u2")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCollectionDeleteDetachesSaves(t *testing.T) {
	db := testutil.NewDB(t)
	saved := NewSavedPostRepository(db)
	collections := NewCollectionRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	col := &model.Collection{ID: "col1", UserID: "u1", Name: "later", CreatedAt: now, UpdatedAt: now}
	require.NoError(t, collections.Create(ctx, col))
	for i, postID := range []string{"p1", "p2"} {
		require.NoError(t, saved.Create(ctx, &model.SavedPost{
			ID: postID + "-save", UserID: "u1", PostID: postID, CollectionID: &col.ID,
			CreatedAt: now.Add(time.Duration(i) * time.Second),
		}))
	}

	ok, err := collections.Delete(ctx, "col1", "u2")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = collections.Delete(ctx, "col1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	list, err := saved.ListByUser(ctx, "u1", nil)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "p2", list[0].PostID)
	for _, sp := range list {
		assert.Nil(t, sp.CollectionID)
	}
}

func TestNotificationUnreadOrder(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewNotificationRepository(db)
	ctx := context.Background()
	now := time.Now().UTC()

	require.NoError(t, repo.Create(ctx, &model.Notification{ID: "n1", Type: model.NotificationLike, TargetUserID: "u1", CreatedAt: now.Add(-time.Hour)}))
	require.NoError(t, repo.Create(ctx, &model.Notification{ID: "n2", Type: model.NotificationLike, TargetUserID: "u1", CreatedAt: now}))
	require.NoError(t, repo.Create(ctx, &model.Notification{ID: "n3", Type: model.NotificationLike, TargetUserID: "u2", CreatedAt: now}))

	ok, err := repo.MarkRead(ctx, "n2")
	require.NoError(t, err)
	assert.True(t, ok)

	unread, err := repo.ListUnread(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, unread, 1)
	assert.Equal(t, "n1", unread[0].ID)

	all, err := repo.ListByTarget(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

func TestProfileUpsertAndBatch(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewProfileRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &model.Profile{ID: "u1", Username: "alice", FullName: "Alice"}))
	require.NoError(t, repo.Upsert(ctx, &model.Profile{ID: "u1", Username: "alice", FullName: "Alice B"}))

	p, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	assert.Equal(t, "Alice B", p.FullName)

	list, err := repo.ListByIDs(ctx, []string{"u1", "ghost"})
	require.NoError(t, err)
	assert.Len(t, list, 1)

	list, err = repo.ListByIDs(ctx, nil)
	require.NoError(t, err)
	assert.Empty(t, list)
}
