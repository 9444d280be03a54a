package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// LikeRepository 文章点赞
type LikeRepository interface {
	// Create 返回是否新插入；已点赞时为 false
	Create(ctx context.Context, postID, userID string) (bool, error)
	Delete(ctx context.Context, postID, userID string) error
	Exists(ctx context.Context, postID, userID string) (bool, error)
	Count(ctx context.Context, postID string) (int64, error)
	ListUserIDs(ctx context.Context, postID string) ([]string, error)
}

type likeRepository struct{ db *gorm.DB }

func NewLikeRepository(db *gorm.DB) LikeRepository { return &likeRepository{db: db} }

func (r *likeRepository) Create(ctx context.Context, postID, userID string) (bool, error) {
	l := &model.PostLike{ID: uuid.New().String(), PostID: postID, UserID: userID}
	// 幂等：并发重复点赞由唯一键兜底
	res := r.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(l)
	return res.RowsAffected > 0, res.Error
}

func (r *likeRepository) Delete(ctx context.Context, postID, userID string) error {
	return r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&model.PostLike{}).Error
}

func (r *likeRepository) Exists(ctx context.Context, postID, userID string) (bool, error) {
	var cnt int64
	if err := r.db.WithContext(ctx).
		Model(&model.PostLike{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}

func (r *likeRepository) Count(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.PostLike{}).Where("post_id = ?", postID).Count(&cnt).Error
	return cnt, err
}

func (r *likeRepository) ListUserIDs(ctx context.Context, postID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.PostLike{}).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Pluck("user_id", &ids).Error
	return ids, err
}
