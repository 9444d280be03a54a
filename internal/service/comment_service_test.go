package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-engine/internal/model"
)

func TestCommentNotifiesPostOwner(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.profile(t, "reader", "reader")
	p, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "p", IsPublished: true}, "author")
	require.NoError(t, err)

	c, err := env.comments.Create(ctx, p.ID, "reader", "  nice post  ", []string{"friend", "reader"})
	require.NoError(t, err)
	assert.Equal(t, "nice post", c.Content)
	assert.Equal(t, "reader", c.Author.Username)

	owner := env.notificationsFor(t, "author")
	require.Len(t, owner, 1)
	assert.Equal(t, model.NotificationComment, owner[0].Type)
	assert.Equal(t, model.ReferenceComment, owner[0].ReferenceType)
	require.NotNil(t, owner[0].ReferenceID)
	assert.Equal(t, c.ID, *owner[0].ReferenceID)

	friend := env.notificationsFor(t, "friend")
	require.Len(t, friend, 1)
	assert.Equal(t, model.NotificationMention, friend[0].Type)
	assert.Empty(t, env.notificationsFor(t, "reader"))
}

func TestCommentOnOwnPostIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "p", IsPublished: true}, "author")
	require.NoError(t, err)

	_, err = env.comments.Create(ctx, p.ID, "author", "self reply", nil)
	require.NoError(t, err)
	assert.Empty(t, env.notificationsFor(t, "author"))
}

func TestCommentValidation(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	_, err := env.comments.Create(ctx, "missing", "reader", "hi", nil)
	assert.True(t, IsNotFound(err))

	p, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "p", IsPublished: true}, "author")
	require.NoError(t, err)
	_, err = env.comments.Create(ctx, p.ID, "reader", "   ", nil)
	assert.True(t, IsValidation(err))
}

func TestCommentOwnership(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "p", IsPublished: true}, "author")
	require.NoError(t, err)
	c, err := env.comments.Create(ctx, p.ID, "reader", "v1", nil)
	require.NoError(t, err)

	_, err = env.comments.Update(ctx, c.ID, "mallory", "hacked")
	assert.True(t, IsNotFound(err))
	updated, err := env.comments.Update(ctx, c.ID, "reader", "v2")
	require.NoError(t, err)
	assert.Equal(t, "v2", updated.Content)

	ok, err := env.comments.Delete(ctx, c.ID, "mallory")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := env.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "v2", list[0].Content)

	ok, err = env.comments.Delete(ctx, c.ID, "reader")
	require.NoError(t, err)
	assert.True(t, ok)
	list, err = env.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCommentLikesNeverGoNegative(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "p", IsPublished: true}, "author")
	require.NoError(t, err)
	c, err := env.comments.Create(ctx, p.ID, "reader", "hi", nil)
	require.NoError(t, err)

	ok, err := env.comments.Like(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = env.comments.Like(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.comments.Dislike(ctx, c.ID, "u2")
	require.NoError(t, err)
	assert.False(t, ok)
	ok, err = env.comments.Dislike(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = env.comments.Dislike(ctx, c.ID, "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	list, err := env.comments.ListByPost(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, 0, list[0].LikeCount)

	_, err = env.comments.Like(ctx, "missing", "u1")
	assert.True(t, IsNotFound(err))
}
