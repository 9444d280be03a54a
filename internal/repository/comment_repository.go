package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// CommentRepository 评论及评论点赞
type CommentRepository interface {
	Create(ctx context.Context, c *model.Comment) error
	GetByID(ctx context.Context, id string) (*model.Comment, error)
	// GetOwned 不存在与非作者一律 ErrNotFound
	GetOwned(ctx context.Context, id, authorID string) (*model.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
	// ListByPost 按创建时间正序
	ListByPost(ctx context.Context, postID string) ([]*model.Comment, error)
	Count(ctx context.Context, postID string) (int64, error)
	// AddLike 插入点赞事实并 like_count+1；重复点赞返回 false
	AddLike(ctx context.Context, commentID, userID string) (bool, error)
	// RemoveLike 删除点赞事实并 like_count-1（不低于 0）
	RemoveLike(ctx context.Context, commentID, userID string) (bool, error)
}

type commentRepository struct{ db *gorm.DB }

func NewCommentRepository(db *gorm.DB) CommentRepository { return &commentRepository{db: db} }

func (r *commentRepository) Create(ctx context.Context, c *model.Comment) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *commentRepository) GetByID(ctx context.Context, id string) (*model.Comment, error) {
	var c model.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *commentRepository) GetOwned(ctx context.Context, id, authorID string) (*model.Comment, error) {
	var c model.Comment
	err := r.db.WithContext(ctx).Where("id = ? AND author_id = ?", id, authorID).First(&c).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *commentRepository) UpdateContent(ctx context.Context, id, content string) error {
	return r.db.WithContext(ctx).Model(&model.Comment{}).
		Where("id = ?", id).
		Updates(map[string]any{"content": content, "updated_at": time.Now().UTC()}).Error
}

func (r *commentRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ?", id).Delete(&model.CommentLike{}).Error; err != nil {
			return err
		}
		return tx.Where("id = ?", id).Delete(&model.Comment{}).Error
	})
}

func (r *commentRepository) ListByPost(ctx context.Context, postID string) ([]*model.Comment, error) {
	var res []*model.Comment
	err := r.db.WithContext(ctx).Where("post_id = ?", postID).Order("created_at ASC").Find(&res).Error
	return res, err
}

func (r *commentRepository) Count(ctx context.Context, postID string) (int64, error) {
	var cnt int64
	err := r.db.WithContext(ctx).Model(&model.Comment{}).Where("post_id = ?", postID).Count(&cnt).Error
	return cnt, err
}

func (r *commentRepository) AddLike(ctx context.Context, commentID, userID string) (bool, error) {
	added := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		like := &model.CommentLike{ID: uuid.New().String(), CommentID: commentID, UserID: userID}
		res := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(like)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		added = true
		return tx.Model(&model.Comment{}).
			Where("id = ?", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count + 1")).Error
	})
	return added, err
}

func (r *commentRepository) RemoveLike(ctx context.Context, commentID, userID string) (bool, error) {
	removed := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).Delete(&model.CommentLike{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		removed = true
		return tx.Model(&model.Comment{}).
			Where("id = ? AND like_count > 0", commentID).
			UpdateColumn("like_count", gorm.Expr("like_count - 1")).Error
	})
	return removed, err
}
