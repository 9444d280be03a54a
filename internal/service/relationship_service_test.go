package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-engine/internal/model"
)

func TestFollowSelfIsRejected(t *testing.T) {
	env := newTestEnv(t)
	for _, u := range []string{"a", "b", ""} {
		ok, err := env.rel.Follow(context.Background(), u, u)
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.Empty(t, env.notificationsFor(t, "a"))
}

func TestFollowUnfollow(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.profile(t, "a", "alice")
	env.profile(t, "b", "bob")

	ok, err := env.rel.Follow(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, ok)
	ok, err = env.rel.Follow(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, ok)

	following, err := env.rel.IsFollowing(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, following)

	followers, err := env.rel.ListFollowers(ctx, "b", 1, 10)
	require.NoError(t, err)
	require.Len(t, followers, 1)
	assert.Equal(t, "alice", followers[0].Username)

	list, err := env.rel.ListFollowing(ctx, "a", 0, 0)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "bob", list[0].Username)

	nFollowers, nFollowing, err := env.rel.Counts(ctx, "b")
	require.NoError(t, err)
	assert.Equal(t, int64(1), nFollowers)
	assert.Equal(t, int64(0), nFollowing)

	removed, err := env.rel.Unfollow(ctx, "a", "b")
	require.NoError(t, err)
	assert.True(t, removed)
	removed, err = env.rel.Unfollow(ctx, "a", "b")
	require.NoError(t, err)
	assert.False(t, removed)

	notes := env.notificationsFor(t, "b")
	require.Len(t, notes, 2)
	types := []string{notes[0].Type, notes[1].Type}
	assert.ElementsMatch(t, []string{model.NotificationFollow, model.NotificationUnfollow}, types)
	for _, n := range notes {
		assert.Equal(t, model.ReferenceUser, n.ReferenceType)
		assert.Equal(t, "a", *n.ReferenceID)
	}
}

func TestFollowPagination(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	for _, u := range []string{"u1", "u2", "u3"} {
		_, err := env.rel.Follow(ctx, u, "star")
		require.NoError(t, err)
	}
	page1, err := env.rel.ListFollowers(ctx, "star", 1, 2)
	require.NoError(t, err)
	page2, err := env.rel.ListFollowers(ctx, "star", 2, 2)
	require.NoError(t, err)
	assert.Len(t, page1, 2)
	assert.Len(t, page2, 1)
}
