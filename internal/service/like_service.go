package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
)

// LikeService 文章点赞
type LikeService interface {
	// Like returns false when the pair already existed.
	Like(ctx context.Context, postID, userID string) (bool, error)
	Unlike(ctx context.Context, postID, userID string) error
	Count(ctx context.Context, postID string) (int64, error)
	Status(ctx context.Context, postID, userID string) (bool, error)
	Likers(ctx context.Context, postID string) ([]Author, error)
}

type likeService struct {
	likes      repository.LikeRepository
	posts      repository.PostRepository
	engagement EngagementService
	notifier   *Notifier
}

func NewLikeService(likes repository.LikeRepository, posts repository.PostRepository, engagement EngagementService, notifier *Notifier) LikeService {
	return &likeService{likes: likes, posts: posts, engagement: engagement, notifier: notifier}
}

func (s *likeService) Like(ctx context.Context, postID, userID string) (bool, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return false, storeErr("get post", err)
	}
	created, err := s.likes.Create(ctx, postID, userID)
	if err != nil {
		return false, fmt.Errorf("like post %s: %w", postID, err)
	}
	if !created {
		return false, nil
	}
	ref := post.ID
	name := s.engagement.Authors(ctx, []string{userID})[userID].Username
	s.notifier.Notify(ctx, userID, &model.Notification{
		Type:          model.NotificationLike,
		Content:       fmt.Sprintf("%s liked your post", name),
		TargetUserID:  post.UserID,
		ReferenceID:   &ref,
		ReferenceType: model.ReferencePost,
	})
	return true, nil
}

func (s *likeService) Unlike(ctx context.Context, postID, userID string) error {
	if err := s.likes.Delete(ctx, postID, userID); err != nil {
		return fmt.Errorf("unlike post %s: %w", postID, err)
	}
	return nil
}

func (s *likeService) Count(ctx context.Context, postID string) (int64, error) {
	return s.likes.Count(ctx, postID)
}

func (s *likeService) Status(ctx context.Context, postID, userID string) (bool, error) {
	if userID == "" {
		return false, nil
	}
	return s.likes.Exists(ctx, postID, userID)
}

func (s *likeService) Likers(ctx context.Context, postID string) ([]Author, error) {
	ids, err := s.likes.ListUserIDs(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("likers of post %s: %w", postID, err)
	}
	return pick(s.engagement.Authors(ctx, ids), ids), nil
}
