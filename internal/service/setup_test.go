package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/d60-Lab/blog-engine/config"
	"github.com/d60-Lab/blog-engine/internal/directory"
	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
	"github.com/d60-Lab/blog-engine/internal/testutil"
	"github.com/d60-Lab/blog-engine/pkg/markdown"
	"github.com/d60-Lab/blog-engine/pkg/storage"
)

type testEnv struct {
	db       *gorm.DB
	dir      *directory.Directory
	storage  *storage.Local
	notifs   repository.NotificationRepository
	taxonomy TaxonomyService
	postTags PostTagService
	engage   EngagementService
	posts    PostService
	discover DiscoveryService
	likes    LikeService
	comments CommentService
	saved    SavedPostService
	rel      RelationshipService
	notify   NotificationService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	db := testutil.NewDB(t)
	store, err := storage.NewLocal(t.TempDir(), "http://cdn.test")
	require.NoError(t, err)

	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	savedRepo := repository.NewSavedPostRepository(db)
	notifRepo := repository.NewNotificationRepository(db)

	dir := directory.New(repository.NewProfileRepository(db), nil, 0)
	notifSvc := NewNotificationService(notifRepo)
	notifier := NewNotifier(notifSvc, config.NotificationsConfig{Async: false})
	postTags := NewPostTagService(repository.NewPostTagRepository(db))
	engage := NewEngagementService(postRepo, likeRepo, repository.NewViewRepository(db), commentRepo, savedRepo, postTags, dir)

	return &testEnv{
		db:       db,
		dir:      dir,
		storage:  store,
		notifs:   notifRepo,
		taxonomy: NewTaxonomyService(tagRepo, catRepo),
		postTags: postTags,
		engage:   engage,
		posts:    NewPostService(postRepo, tagRepo, catRepo, postTags, engage, dir, markdown.NewRenderer(), store, notifier),
		discover: NewDiscoveryService(postRepo, tagRepo, catRepo, postTags, engage, dir, 2),
		likes:    NewLikeService(likeRepo, postRepo, engage, notifier),
		comments: NewCommentService(commentRepo, postRepo, engage, notifier),
		saved:    NewSavedPostService(savedRepo, repository.NewCollectionRepository(db), postRepo, engage, notifier),
		rel:      NewRelationshipService(repository.NewFollowRepository(db), engage, notifier),
		notify:   notifSvc,
	}
}

func (e *testEnv) profile(t *testing.T, id, username string) {
	t.Helper()
	require.NoError(t, e.dir.Upsert(context.Background(), &model.Profile{ID: id, Username: username, FullName: "Full " + username}))
}

// publish creates a published post and pins its published_at.
func (e *testEnv) publish(t *testing.T, author string, in PostInput, at time.Time) *PostDetail {
	t.Helper()
	in.IsPublished = true
	p, err := e.posts.CreateOrUpdate(context.Background(), in, author)
	require.NoError(t, err)
	at = at.UTC()
	require.NoError(t, e.db.Model(&model.Post{}).Where("id = ?", p.ID).Update("published_at", at).Error)
	p.PublishedAt = &at
	return p
}

func (e *testEnv) notificationsFor(t *testing.T, userID string) []*model.Notification {
	t.Helper()
	list, err := e.notifs.ListByTarget(context.Background(), userID)
	require.NoError(t, err)
	return list
}

func strPtr(s string) *string { return &s }

func ids(details []*PostDetail) []string {
	res := make([]string, len(details))
	for i, d := range details {
		res[i] = d.ID
	}
	return res
}
