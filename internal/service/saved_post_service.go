package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
)

// SavedPostService 收藏与收藏夹
type SavedPostService interface {
	// Save is idempotent; an existing save only moves to the supplied collection.
	Save(ctx context.Context, postID, userID string, collectionID *string) (*model.SavedPost, error)
	Remove(ctx context.Context, postID, userID string) error
	List(ctx context.Context, userID string, collectionID *string) ([]*PostDetail, error)

	CreateCollection(ctx context.Context, userID, name string) (*model.Collection, error)
	ListCollections(ctx context.Context, userID string) ([]*model.Collection, error)
	RenameCollection(ctx context.Context, id, userID, name string) (*model.Collection, error)
	DeleteCollection(ctx context.Context, id, userID string) (bool, error)
}

type savedPostService struct {
	saved       repository.SavedPostRepository
	collections repository.CollectionRepository
	posts       repository.PostRepository
	engagement  EngagementService
	notifier    *Notifier
	now         func() time.Time
}

func NewSavedPostService(
	saved repository.SavedPostRepository,
	collections repository.CollectionRepository,
	posts repository.PostRepository,
	engagement EngagementService,
	notifier *Notifier,
) SavedPostService {
	return &savedPostService{
		saved:       saved,
		collections: collections,
		posts:       posts,
		engagement:  engagement,
		notifier:    notifier,
		now:         utcNow,
	}
}

func (s *savedPostService) Save(ctx context.Context, postID, userID string, collectionID *string) (*model.SavedPost, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeErr("get post", err)
	}
	if !post.Releasable(s.now()) {
		return nil, ErrPostNotPublished
	}
	if collectionID != nil && *collectionID == "" {
		collectionID = nil
	}
	if collectionID != nil {
		if _, err := s.collections.GetOwned(ctx, *collectionID, userID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return nil, ErrCollectionNotFound
			}
			return nil, fmt.Errorf("get collection: %w", err)
		}
	}

	existing, err := s.saved.Get(ctx, userID, postID)
	switch {
	case err == nil:
		return s.move(ctx, existing, collectionID)
	case !errors.Is(err, repository.ErrNotFound):
		return nil, fmt.Errorf("get saved post: %w", err)
	}

	sp := &model.SavedPost{
		ID:           uuid.New().String(),
		UserID:       userID,
		PostID:       postID,
		CollectionID: collectionID,
		CreatedAt:    s.now(),
	}
	if err := s.saved.Create(ctx, sp); err != nil {
		// lost a race with a concurrent save of the same pair
		if existing, getErr := s.saved.Get(ctx, userID, postID); getErr == nil {
			return s.move(ctx, existing, collectionID)
		}
		return nil, fmt.Errorf("save post: %w", err)
	}

	ref := post.ID
	name := s.engagement.Authors(ctx, []string{userID})[userID].Username
	s.notifier.Notify(ctx, userID, &model.Notification{
		Type:          model.NotificationSave,
		Content:       fmt.Sprintf("%s saved your post", name),
		TargetUserID:  post.UserID,
		ReferenceID:   &ref,
		ReferenceType: model.ReferencePost,
	})
	return sp, nil
}

func (s *savedPostService) move(ctx context.Context, sp *model.SavedPost, collectionID *string) (*model.SavedPost, error) {
	if collectionID == nil {
		return sp, nil
	}
	if err := s.saved.SetCollection(ctx, sp.ID, collectionID); err != nil {
		return nil, fmt.Errorf("move saved post: %w", err)
	}
	sp.CollectionID = collectionID
	return sp, nil
}

func (s *savedPostService) Remove(ctx context.Context, postID, userID string) error {
	if err := s.saved.Delete(ctx, userID, postID); err != nil {
		return fmt.Errorf("remove saved post: %w", err)
	}
	return nil
}

func (s *savedPostService) List(ctx context.Context, userID string, collectionID *string) ([]*PostDetail, error) {
	if collectionID != nil && *collectionID == "" {
		collectionID = nil
	}
	saved, err := s.saved.ListByUser(ctx, userID, collectionID)
	if err != nil {
		return nil, fmt.Errorf("list saved posts: %w", err)
	}
	ids := make([]string, len(saved))
	for i, sp := range saved {
		ids[i] = sp.PostID
	}
	now := s.now()
	posts, err := s.posts.List(ctx, repository.PostQuery{IDs: ids, PublishedOnly: true, ReleasedBy: &now})
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	details, err := s.engagement.DecorateAll(ctx, posts, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*PostDetail, len(details))
	for _, d := range details {
		byID[d.ID] = d
	}

	res := make([]*PostDetail, 0, len(details))
	for _, sp := range saved {
		d, ok := byID[sp.PostID]
		if !ok {
			continue
		}
		d.CollectionID = sp.CollectionID
		res = append(res, d)
	}
	return res, nil
}

func (s *savedPostService) CreateCollection(ctx context.Context, userID, name string) (*model.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("collection name is required")
	}
	now := s.now()
	c := &model.Collection{ID: uuid.New().String(), UserID: userID, Name: name, CreatedAt: now, UpdatedAt: now}
	if err := s.collections.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create collection: %w", err)
	}
	return c, nil
}

func (s *savedPostService) ListCollections(ctx context.Context, userID string) ([]*model.Collection, error) {
	return s.collections.ListByUser(ctx, userID)
}

func (s *savedPostService) RenameCollection(ctx context.Context, id, userID, name string) (*model.Collection, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("collection name is required")
	}
	ok, err := s.collections.Rename(ctx, id, userID, name)
	if err != nil {
		return nil, fmt.Errorf("rename collection: %w", err)
	}
	if !ok {
		return nil, ErrCollectionNotFound
	}
	c, err := s.collections.GetOwned(ctx, id, userID)
	if err != nil {
		return nil, storeErr("get collection", err)
	}
	return c, nil
}

func (s *savedPostService) DeleteCollection(ctx context.Context, id, userID string) (bool, error) {
	ok, err := s.collections.Delete(ctx, id, userID)
	if err != nil {
		return false, fmt.Errorf("delete collection: %w", err)
	}
	return ok, nil
}
