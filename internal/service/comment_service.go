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

// CommentService 评论；修改和删除只允许作者本人
type CommentService interface {
	Create(ctx context.Context, postID, authorID, content string, mentionedUserIDs []string) (*CommentDetail, error)
	Update(ctx context.Context, commentID, authorID, content string) (*CommentDetail, error)
	// Delete returns false when the comment is missing or not owned by authorID.
	Delete(ctx context.Context, commentID, authorID string) (bool, error)
	ListByPost(ctx context.Context, postID string) ([]*CommentDetail, error)
	Like(ctx context.Context, commentID, userID string) (bool, error)
	Dislike(ctx context.Context, commentID, userID string) (bool, error)
}

type commentService struct {
	comments   repository.CommentRepository
	posts      repository.PostRepository
	engagement EngagementService
	notifier   *Notifier
	now        func() time.Time
}

func NewCommentService(comments repository.CommentRepository, posts repository.PostRepository, engagement EngagementService, notifier *Notifier) CommentService {
	return &commentService{comments: comments, posts: posts, engagement: engagement, notifier: notifier, now: utcNow}
}

func (s *commentService) Create(ctx context.Context, postID, authorID, content string, mentionedUserIDs []string) (*CommentDetail, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidf("comment content is required")
	}
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeErr("get post", err)
	}

	now := s.now()
	c := &model.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		AuthorID:  authorID,
		Content:   content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}

	author := s.engagement.Authors(ctx, []string{authorID})[authorID]
	ref := c.ID
	s.notifier.Notify(ctx, authorID, &model.Notification{
		Type:          model.NotificationComment,
		Content:       fmt.Sprintf("New comment on your post by %s", author.FullName),
		TargetUserID:  post.UserID,
		ReferenceID:   &ref,
		ReferenceType: model.ReferenceComment,
	})
	for _, uid := range dedupe(mentionedUserIDs) {
		s.notifier.Notify(ctx, authorID, &model.Notification{
			Type:          model.NotificationMention,
			Content:       fmt.Sprintf("You were mentioned in a comment by %s", author.FullName),
			TargetUserID:  uid,
			ReferenceID:   &ref,
			ReferenceType: model.ReferenceComment,
		})
	}
	return &CommentDetail{Comment: *c, Author: author}, nil
}

func (s *commentService) Update(ctx context.Context, commentID, authorID, content string) (*CommentDetail, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalidf("comment content is required")
	}
	c, err := s.comments.GetOwned(ctx, commentID, authorID)
	if err != nil {
		return nil, storeErr("get comment", err)
	}
	if err := s.comments.UpdateContent(ctx, commentID, content); err != nil {
		return nil, fmt.Errorf("update comment: %w", err)
	}
	c.Content = content
	c.UpdatedAt = s.now()
	return &CommentDetail{Comment: *c, Author: s.engagement.Authors(ctx, []string{authorID})[authorID]}, nil
}

func (s *commentService) Delete(ctx context.Context, commentID, authorID string) (bool, error) {
	if _, err := s.comments.GetOwned(ctx, commentID, authorID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get comment: %w", err)
	}
	if err := s.comments.Delete(ctx, commentID); err != nil {
		return false, fmt.Errorf("delete comment: %w", err)
	}
	return true, nil
}

func (s *commentService) ListByPost(ctx context.Context, postID string) ([]*CommentDetail, error) {
	comments, err := s.comments.ListByPost(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("list comments: %w", err)
	}
	ids := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.AuthorID
	}
	authors := s.engagement.Authors(ctx, ids)
	res := make([]*CommentDetail, 0, len(comments))
	for _, c := range comments {
		res = append(res, &CommentDetail{Comment: *c, Author: authors[c.AuthorID]})
	}
	return res, nil
}

func (s *commentService) Like(ctx context.Context, commentID, userID string) (bool, error) {
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return false, storeErr("get comment", err)
	}
	return s.comments.AddLike(ctx, commentID, userID)
}

func (s *commentService) Dislike(ctx context.Context, commentID, userID string) (bool, error) {
	if _, err := s.comments.GetByID(ctx, commentID); err != nil {
		return false, storeErr("get comment", err)
	}
	return s.comments.RemoveLike(ctx, commentID, userID)
}
