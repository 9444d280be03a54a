package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// PostTagRepository 文章-标签关联
type PostTagRepository interface {
	// Replace 在一个事务里删除文章的全部关联再插入 tagIDs
	Replace(ctx context.Context, postID string, tagIDs []string) error
	TagsOf(ctx context.Context, postID string) ([]*model.Tag, error)
	TagIDsOf(ctx context.Context, postID string) ([]string, error)
	PostIDsOf(ctx context.Context, tagID string) ([]string, error)
}

type postTagRepository struct{ db *gorm.DB }

func NewPostTagRepository(db *gorm.DB) PostTagRepository { return &postTagRepository{db: db} }

func (r *postTagRepository) Replace(ctx context.Context, postID string, tagIDs []string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", postID).Delete(&model.PostTag{}).Error; err != nil {
			return err
		}
		if len(tagIDs) == 0 {
			return nil
		}
		links := make([]model.PostTag, 0, len(tagIDs))
		for _, id := range tagIDs {
			links = append(links, model.PostTag{PostID: postID, TagID: id})
		}
		// 重复 tag id 不报错
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&links).Error
	})
}

func (r *postTagRepository) TagsOf(ctx context.Context, postID string) ([]*model.Tag, error) {
	var res []*model.Tag
	err := r.db.WithContext(ctx).
		Joins("JOIN post_tags ON post_tags.tag_id = tags.id").
		Where("post_tags.post_id = ?", postID).
		Order("tags.name").
		Find(&res).Error
	return res, err
}

func (r *postTagRepository) TagIDsOf(ctx context.Context, postID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.PostTag{}).
		Where("post_id = ?", postID).
		Order("tag_id").
		Pluck("tag_id", &ids).Error
	return ids, err
}

func (r *postTagRepository) PostIDsOf(ctx context.Context, tagID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).Model(&model.PostTag{}).
		Where("tag_id = ?", tagID).
		Order("post_id").
		Pluck("post_id", &ids).Error
	return ids, err
}
