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

func seedPost(t *testing.T, repo PostRepository, p model.Post) *model.Post {
	t.Helper()
	require.NoError(t, repo.Save(context.Background(), &p))
	return &p
}

func at(s string) *time.Time {
	ts, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	ts = ts.UTC()
	return &ts
}

func TestPostQueryFilters(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	cat := "c1"

	seedPost(t, repo, model.Post{ID: "p1", Title: "Rome in 100% Spring", UserID: "u1", IsPublished: true, PublishedAt: at("2024-03-10T10:00:00Z"), LocationTag: "Rome, Italy", CategoryID: &cat})
	seedPost(t, repo, model.Post{ID: "p2", Title: "Paris_notes", UserID: "u2", IsPublished: true, PublishedAt: at("2024-03-11T10:00:00Z"), LocationTag: "Paris"})
	seedPost(t, repo, model.Post{ID: "p3", Title: "future", UserID: "u1", IsPublished: true, PublishedAt: at("2099-01-01T00:00:00Z")})
	seedPost(t, repo, model.Post{ID: "p4", Title: "draft", UserID: "u1"})

	now := time.Now().UTC()
	cases := []struct {
		name string
		q    PostQuery
		want []string
	}{
		{"released newest first", PostQuery{PublishedOnly: true, ReleasedBy: &now}, []string{"p2", "p1"}},
		{"published includes future", PostQuery{PublishedOnly: true}, []string{"p3", "p2", "p1"}},
		{"by author", PostQuery{UserID: "u1", OrderBy: "id"}, []string{"p1", "p3", "p4"}},
		{"empty id set", PostQuery{IDs: []string{}}, nil},
		{"id set", PostQuery{IDs: []string{"p1", "p4"}, OrderBy: "id"}, []string{"p1", "p4"}},
		{"exclude", PostQuery{PublishedOnly: true, ReleasedBy: &now, ExcludeID: "p2"}, []string{"p1"}},
		{"category", PostQuery{CategoryIDs: []string{"c1"}}, []string{"p1"}},
		{"empty category set", PostQuery{CategoryIDs: []string{}}, nil},
		{"location substring ignores case", PostQuery{LocationContains: " ITALY "}, []string{"p1"}},
		{"percent is literal", PostQuery{TitleContains: "100%"}, []string{"p1"}},
		{"underscore is literal", PostQuery{TitleContains: "s_n"}, []string{"p2"}},
		{"underscore no wildcard", PostQuery{TitleContains: "e_i"}, nil},
		{"date range", PostQuery{PublishedFrom: at("2024-03-11T00:00:00Z"), PublishedTo: at("2024-03-12T00:00:00Z")}, []string{"p2"}},
		{"paging", PostQuery{PublishedOnly: true, Offset: 1, Limit: 1}, []string{"p2"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := repo.ListIDs(ctx, tc.q)
			require.NoError(t, err)
			if tc.want == nil {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestPostGetOwned(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostRepository(db)
	ctx := context.Background()
	seedPost(t, repo, model.Post{ID: "p1", Title: "t", UserID: "u1", Hashtags: []string{"#go"}})

	p, err := repo.GetOwned(ctx, "p1", "u1")
	require.NoError(t, err)
	assert.Equal(t, []string{"#go"}, []string(p.Hashtags))

	_, err = repo.GetOwned(ctx, "p1", "u2")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = repo.GetByID(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Delete(ctx, "p1"))
	_, err = repo.GetByID(ctx, "p1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostTagReplace(t *testing.T) {
	db := testutil.NewDB(t)
	repo := NewPostTagRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Replace(ctx, "p1", []string{"t2", "t1", "t1"}))
	ids, err := repo.TagIDsOf(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t2"}, ids)

	require.NoError(t, repo.Replace(ctx, "p1", []string{"t3"}))
	ids, err = repo.TagIDsOf(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"t3"}, ids)

	posts, err := repo.PostIDsOf(ctx, "t1")
	require.NoError(t, err)
	assert.Empty(t, posts)

	require.NoError(t, repo.Replace(ctx, "p1", nil))
	ids, err = repo.TagIDsOf(ctx, "p1")
	require.NoError(t, err)
	assert.Empty(t, ids)
}
