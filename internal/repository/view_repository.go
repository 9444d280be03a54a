package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// ViewRepository 浏览记录
type ViewRepository interface {
	// CreateIfAbsent (post, user) 已存在时不插入，返回是否新插入
	CreateIfAbsent(ctx context.Context, postID, userID string) (bool, error)
	// ListByPost 按时间倒序
	ListByPost(ctx context.Context, postID string) ([]*model.PostView, error)
}

type viewRepository struct{ db *gorm.DB }

func NewViewRepository(db *gorm.DB) ViewRepository { return &viewRepository{db: db} }

func (r *viewRepository) CreateIfAbsent(ctx context.Context, postID, userID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).Model(&model.PostView{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	if cnt > 0 {
		return false, nil
	}
	uid := userID
	v := &model.PostView{ID: uuid.New().String(), PostID: postID, UserID: &uid}
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(v)
	return res.RowsAffected > 0, res.Error
}

func (r *viewRepository) ListByPost(ctx context.Context, postID string) ([]*model.PostView, error) {
	var res []*model.PostView
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at DESC").Find(&res).Error
	return res, err
}
