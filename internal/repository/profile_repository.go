package repository

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// ProfileRepository 用户资料
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*model.Profile, error)
	GetByUsername(ctx context.Context, username string) (*model.Profile, error)
	// ListByIDs 缺失的 id 直接不出现在结果里
	ListByIDs(ctx context.Context, ids []string) ([]*model.Profile, error)
	Upsert(ctx context.Context, p *model.Profile) error
}

type profileRepository struct{ db *gorm.DB }

func NewProfileRepository(db *gorm.DB) ProfileRepository { return &profileRepository{db: db} }

func (r *profileRepository) GetByID(ctx context.Context, id string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *profileRepository) GetByUsername(ctx context.Context, username string) (*model.Profile, error) {
	var p model.Profile
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&p).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *profileRepository) ListByIDs(ctx context.Context, ids []string) ([]*model.Profile, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var res []*model.Profile
	err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&res).Error
	return res, err
}

func (r *profileRepository) Upsert(ctx context.Context, p *model.Profile) error {
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(p).Error
}
