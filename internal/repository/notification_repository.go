package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// NotificationRepository 通知存储
type NotificationRepository interface {
	Create(ctx context.Context, n *model.Notification) error
	GetByID(ctx context.Context, id string) (*model.Notification, error)
	// ListUnread 按创建时间倒序
	ListUnread(ctx context.Context, targetUserID string) ([]*model.Notification, error)
	// ListByTarget 全部通知（含已读），按创建时间倒序
	ListByTarget(ctx context.Context, targetUserID string) ([]*model.Notification, error)
	MarkRead(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type notificationRepository struct{ db *gorm.DB }

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(ctx context.Context, n *model.Notification) error {
	return r.db.WithContext(ctx).Create(n).Error
}

func (r *notificationRepository) GetByID(ctx context.Context, id string) (*model.Notification, error) {
	var n model.Notification
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&n).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &n, nil
}

func (r *notificationRepository) ListUnread(ctx context.Context, targetUserID string) ([]*model.Notification, error) {
	var res []*model.Notification
	err := r.db.WithContext(ctx).
		Where("target_user_id = ? AND is_read = ?", targetUserID, false).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *notificationRepository) ListByTarget(ctx context.Context, targetUserID string) ([]*model.Notification, error) {
	var res []*model.Notification
	err := r.db.WithContext(ctx).
		Where("target_user_id = ?", targetUserID).
		Order("created_at DESC").
		Find(&res).Error
	return res, err
}

func (r *notificationRepository) MarkRead(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", id).Update("is_read", true)
	return res.RowsAffected > 0, res.Error
}

func (r *notificationRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Notification{})
	return res.RowsAffected > 0, res.Error
}
