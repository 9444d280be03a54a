package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
)

var notificationTypes = map[string]struct{}{
	model.NotificationComment:  {},
	model.NotificationLike:     {},
	model.NotificationFollow:   {},
	model.NotificationUnfollow: {},
	model.NotificationMention:  {},
	model.NotificationSave:     {},
}

// NotificationService 通知的创建与读取；所有读写都限定在接收者本人
type NotificationService interface {
	// Emit persists n, assigning id and created time when absent.
	Emit(ctx context.Context, n *model.Notification) (*model.Notification, error)
	ListUnread(ctx context.Context, userID string) ([]*model.Notification, error)
	Get(ctx context.Context, id, userID string) (*model.Notification, error)
	MarkRead(ctx context.Context, id, userID string) (bool, error)
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type notificationService struct {
	repo repository.NotificationRepository
	now  func() time.Time
}

func NewNotificationService(repo repository.NotificationRepository) NotificationService {
	return &notificationService{repo: repo, now: utcNow}
}

func utcNow() time.Time { return time.Now().UTC() }

func (s *notificationService) Emit(ctx context.Context, n *model.Notification) (*model.Notification, error) {
	if n == nil || n.TargetUserID == "" {
		return nil, invalidf("notification target is required")
	}
	if _, ok := notificationTypes[n.Type]; !ok {
		return nil, invalidf("unknown notification type %q", n.Type)
	}
	if n.ID == "" {
		n.ID = uuid.New().String()
	}
	if n.CreatedAt.IsZero() {
		n.CreatedAt = s.now()
	}
	if err := s.repo.Create(ctx, n); err != nil {
		return nil, fmt.Errorf("create notification: %w", err)
	}
	return n, nil
}

func (s *notificationService) ListUnread(ctx context.Context, userID string) ([]*model.Notification, error) {
	return s.repo.ListUnread(ctx, userID)
}

func (s *notificationService) Get(ctx context.Context, id, userID string) (*model.Notification, error) {
	n, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get notification", err)
	}
	if n.TargetUserID != userID {
		return nil, ErrNotFound
	}
	return n, nil
}

func (s *notificationService) MarkRead(ctx context.Context, id, userID string) (bool, error) {
	if _, err := s.Get(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.repo.MarkRead(ctx, id)
}

func (s *notificationService) Delete(ctx context.Context, id, userID string) (bool, error) {
	if _, err := s.Get(ctx, id, userID); err != nil {
		if errors.Is(err, ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return s.repo.Delete(ctx, id)
}
