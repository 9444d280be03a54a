package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/d60-Lab/blog-engine/internal/model"
)

func TestSaveRules(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	env.profile(t, "reader", "reader")

	draft, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "draft"}, "author")
	require.NoError(t, err)
	_, err = env.saved.Save(ctx, draft.ID, "reader", nil)
	assert.ErrorIs(t, err, ErrPostNotPublished)

	_, err = env.saved.Save(ctx, "missing", "reader", nil)
	assert.True(t, IsNotFound(err))

	p, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "p", IsPublished: true}, "author")
	require.NoError(t, err)
	other, err := env.saved.CreateCollection(ctx, "someone-else", "theirs")
	require.NoError(t, err)
	_, err = env.saved.Save(ctx, p.ID, "reader", &other.ID)
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	first, err := env.saved.Save(ctx, p.ID, "reader", nil)
	require.NoError(t, err)
	assert.Nil(t, first.CollectionID)

	mine, err := env.saved.CreateCollection(ctx, "reader", "later")
	require.NoError(t, err)
	moved, err := env.saved.Save(ctx, p.ID, "reader", &mine.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, moved.ID)
	require.NotNil(t, moved.CollectionID)
	assert.Equal(t, mine.ID, *moved.CollectionID)

	notes := env.notificationsFor(t, "author")
	require.Len(t, notes, 1, "moving a save does not notify again")
	assert.Equal(t, model.NotificationSave, notes[0].Type)
	assert.Equal(t, "reader saved your post", notes[0].Content)
}

func TestSaveOwnPostIsSilent(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	p, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "p", IsPublished: true}, "author")
	require.NoError(t, err)

	_, err = env.saved.Save(ctx, p.ID, "author", nil)
	require.NoError(t, err)
	assert.Empty(t, env.notificationsFor(t, "author"))
}

func TestListSavedPosts(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	col, err := env.saved.CreateCollection(ctx, "reader", "reading")
	require.NoError(t, err)

	a, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "a", IsPublished: true}, "author")
	require.NoError(t, err)
	b, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: "b", IsPublished: true}, "author")
	require.NoError(t, err)
	_, err = env.saved.Save(ctx, a.ID, "reader", &col.ID)
	require.NoError(t, err)
	_, err = env.saved.Save(ctx, b.ID, "reader", nil)
	require.NoError(t, err)

	all, err := env.saved.List(ctx, "reader", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID, a.ID}, ids(all))
	require.NotNil(t, all[1].CollectionID)
	assert.Equal(t, col.ID, *all[1].CollectionID)

	inCol, err := env.saved.List(ctx, "reader", &col.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{a.ID}, ids(inCol))

	require.NoError(t, env.saved.Remove(ctx, a.ID, "reader"))
	require.NoError(t, env.saved.Remove(ctx, a.ID, "reader"))
	all, err = env.saved.List(ctx, "reader", nil)
	require.NoError(t, err)
	assert.Equal(t, []string{b.ID}, ids(all))
}

func TestDeleteCollectionKeepsSaves(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	col, err := env.saved.CreateCollection(ctx, "reader", "to read")
	require.NoError(t, err)

	var saves []*model.SavedPost
	for _, title := range []string{"one", "two"} {
		p, err := env.posts.CreateOrUpdate(ctx, PostInput{Title: title, IsPublished: true}, "author")
		require.NoError(t, err)
		sp, err := env.saved.Save(ctx, p.ID, "reader", &col.ID)
		require.NoError(t, err)
		saves = append(saves, sp)
	}

	ok, err := env.saved.DeleteCollection(ctx, col.ID, "mallory")
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = env.saved.DeleteCollection(ctx, col.ID, "reader")
	require.NoError(t, err)
	assert.True(t, ok)

	for _, sp := range saves {
		var got model.SavedPost
		require.NoError(t, env.db.Where("id = ?", sp.ID).First(&got).Error)
		assert.Nil(t, got.CollectionID)
	}
	cols, err := env.saved.ListCollections(ctx, "reader")
	require.NoError(t, err)
	assert.Empty(t, cols)
}

func TestRenameCollection(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()
	col, err := env.saved.CreateCollection(ctx, "reader", "old")
	require.NoError(t, err)

	_, err = env.saved.RenameCollection(ctx, col.ID, "mallory", "mine now")
	assert.ErrorIs(t, err, ErrCollectionNotFound)
	_, err = env.saved.RenameCollection(ctx, col.ID, "reader", " ")
	assert.True(t, IsValidation(err))

	renamed, err := env.saved.RenameCollection(ctx, col.ID, "reader", "new")
	require.NoError(t, err)
	assert.Equal(t, "new", renamed.Name)

	_, err = env.saved.CreateCollection(ctx, "reader", "")
	assert.True(t, IsValidation(err))
}
