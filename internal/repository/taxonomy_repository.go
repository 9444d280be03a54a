package repository

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// TagRepository 标签存储
type TagRepository interface {
	Create(ctx context.Context, tag *model.Tag) error
	List(ctx context.Context) ([]*model.Tag, error)
	GetByID(ctx context.Context, id string) (*model.Tag, error)
	// GetByName 忽略大小写
	GetByName(ctx context.Context, name string) (*model.Tag, error)
	// ExistingIDs 返回 ids 中真实存在的部分
	ExistingIDs(ctx context.Context, ids []string) ([]string, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type tagRepository struct{ db *gorm.DB }

func NewTagRepository(db *gorm.DB) TagRepository { return &tagRepository{db: db} }

func (r *tagRepository) Create(ctx context.Context, tag *model.Tag) error {
	return r.db.WithContext(ctx).Create(tag).Error
}

func (r *tagRepository) List(ctx context.Context) ([]*model.Tag, error) {
	var res []*model.Tag
	err := r.db.WithContext(ctx).Order("name").Find(&res).Error
	return res, err
}

func (r *tagRepository) GetByID(ctx context.Context, id string) (*model.Tag, error) {
	var t model.Tag
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&t).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (r *tagRepository) GetByName(ctx context.Context, name string) (*model.Tag, error) {
	var t model.Tag
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&t).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &t, nil
}

func (r *tagRepository) ExistingIDs(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var res []string
	err := r.db.WithContext(ctx).Model(&model.Tag{}).Where("id IN ?", ids).Pluck("id", &res).Error
	return res, err
}

func (r *tagRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Tag{})
	return res.RowsAffected > 0, res.Error
}

// CategoryRepository 分类存储
type CategoryRepository interface {
	Create(ctx context.Context, c *model.Category) error
	List(ctx context.Context) ([]*model.Category, error)
	GetByID(ctx context.Context, id string) (*model.Category, error)
	GetByName(ctx context.Context, name string) (*model.Category, error)
	Delete(ctx context.Context, id string) (bool, error)
}

type categoryRepository struct{ db *gorm.DB }

func NewCategoryRepository(db *gorm.DB) CategoryRepository { return &categoryRepository{db: db} }

func (r *categoryRepository) Create(ctx context.Context, c *model.Category) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *categoryRepository) List(ctx context.Context) ([]*model.Category, error) {
	var res []*model.Category
	err := r.db.WithContext(ctx).Order("name").Find(&res).Error
	return res, err
}

func (r *categoryRepository) GetByID(ctx context.Context, id string) (*model.Category, error) {
	var c model.Category
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *categoryRepository) GetByName(ctx context.Context, name string) (*model.Category, error) {
	var c model.Category
	err := r.db.WithContext(ctx).
		Where("LOWER(name) = ?", strings.ToLower(strings.TrimSpace(name))).
		First(&c).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &c, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Category{})
	return res.RowsAffected > 0, res.Error
}
