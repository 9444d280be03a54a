package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// SavedPostRepository 收藏
type SavedPostRepository interface {
	Get(ctx context.Context, userID, postID string) (*model.SavedPost, error)
	Create(ctx context.Context, sp *model.SavedPost) error
	SetCollection(ctx context.Context, id string, collectionID *string) error
	Delete(ctx context.Context, userID, postID string) error
	// ListByUser collectionID 非 nil 时只看该收藏夹，按收藏时间倒序
	ListByUser(ctx context.Context, userID string, collectionID *string) ([]*model.SavedPost, error)
	ListUserIDsByPost(ctx context.Context, postID string) ([]string, error)
}

type savedPostRepository struct{ db *gorm.DB }

func NewSavedPostRepository(db *gorm.DB) SavedPostRepository { return &savedPostRepository{db: db} }

func (r *savedPostRepository) Get(ctx context.Context, userID, postID string) (*model.SavedPost, error) {
	var sp model.SavedPost
	err := r.db.WithContext(ctx).Where("user_id = ? AND post_id = ?", userID, postID).First(&sp).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &sp, nil
}

func (r *savedPostRepository) Create(ctx context.Context, sp *model.SavedPost) error {
	return r.db.WithContext(ctx).Create(sp).Error
}

func (r *savedPostRepository) SetCollection(ctx context.Context, id string, collectionID *string) error {
	return r.db.WithContext(ctx).Model(&model.SavedPost{}).
		Where("id = ?", id).
		Update("collection_id", collectionID).Error
}

func (r *savedPostRepository) Delete(ctx context.Context, userID, postID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&model.SavedPost{}).Error
}

func (r *savedPostRepository) ListByUser(ctx context.Context, userID string, collectionID *string) ([]*model.SavedPost, error) {
	tx := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if collectionID != nil {
		tx = tx.Where("collection_id = ?", *collectionID)
	}
	var res []*model.SavedPost
	err := tx.Order("created_at DESC").Find(&res).Error
	return res, err
}

func (r *savedPostRepository) ListUserIDsByPost(ctx context.Context, postID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.SavedPost{}).
		Where("post_id = ?", postID).
		Order("created_at DESC").
		Pluck("user_id", &ids).Error
	return ids, err
}

// CollectionRepository 收藏夹
type CollectionRepository interface {
	Create(ctx context.Context, c *model.Collection) error
	// GetOwned 不存在与不属于 userID 一律 ErrNotFound
	GetOwned(ctx context.Context, id, userID string) (*model.Collection, error)
	ListByUser(ctx context.Context, userID string) ([]*model.Collection, error)
	Rename(ctx context.Context, id, userID, name string) (bool, error)
	// Delete 删除收藏夹并把引用它的收藏 collection_id 置空（收藏本身保留）
	Delete(ctx context.Context, id, userID string) (bool, error)
}

type collectionRepository struct{ db *gorm.DB }

func NewCollectionRepository(db *gorm.DB) CollectionRepository { return &collectionRepository{db: db} }

func (r *collectionRepository) Create(ctx context.Context, c *model.Collection) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *collectionRepository) GetOwned(ctx context.Context, id, userID string) (*model.Collection, error) {
	var c model.Collection
	err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&c).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *collectionRepository) ListByUser(ctx context.Context, userID string) ([]*model.Collection, error) {
	var res []*model.Collection
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).Order("created_at DESC").Find(&res).Error
	return res, err
}

func (r *collectionRepository) Rename(ctx context.Context, id, userID, name string) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Collection{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]any{"name": name, "updated_at": time.Now().UTC()})
	return res.RowsAffected > 0, res.Error
}

func (r *collectionRepository) Delete(ctx context.Context, id, userID string) (bool, error) {
	deleted := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", id, userID).Delete(&model.Collection{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return nil
		}
		deleted = true
		return tx.Model(&model.SavedPost{}).
			Where("collection_id = ?", id).
			Update("collection_id", nil).Error
	})
	return deleted, err
}
