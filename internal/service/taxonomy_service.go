package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
)

// TaxonomyService 标签与分类
type TaxonomyService interface {
	CreateTag(ctx context.Context, name, description string) (*model.Tag, error)
	ListTags(ctx context.Context) ([]*model.Tag, error)
	GetTag(ctx context.Context, id string) (*model.Tag, error)
	GetTagByName(ctx context.Context, name string) (*model.Tag, error)
	DeleteTag(ctx context.Context, id string) (bool, error)

	CreateCategory(ctx context.Context, name, description string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]*model.Category, error)
	GetCategory(ctx context.Context, id string) (*model.Category, error)
	GetCategoryByName(ctx context.Context, name string) (*model.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

type taxonomyService struct {
	tags       repository.TagRepository
	categories repository.CategoryRepository
}

func NewTaxonomyService(tags repository.TagRepository, categories repository.CategoryRepository) TaxonomyService {
	return &taxonomyService{tags: tags, categories: categories}
}

func (s *taxonomyService) CreateTag(ctx context.Context, name, description string) (*model.Tag, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("tag name is required")
	}
	if _, err := s.tags.GetByName(ctx, name); err == nil {
		return nil, invalidf("tag %q already exists", name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeErr("lookup tag", err)
	}
	tag := &model.Tag{ID: uuid.New().String(), Name: name, Description: description, CreatedAt: time.Now().UTC()}
	if err := s.tags.Create(ctx, tag); err != nil {
		return nil, storeErr("create tag", err)
	}
	return tag, nil
}

func (s *taxonomyService) ListTags(ctx context.Context) ([]*model.Tag, error) {
	return s.tags.List(ctx)
}

func (s *taxonomyService) GetTag(ctx context.Context, id string) (*model.Tag, error) {
	tag, err := s.tags.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get tag", err)
	}
	return tag, nil
}

func (s *taxonomyService) GetTagByName(ctx context.Context, name string) (*model.Tag, error) {
	tag, err := s.tags.GetByName(ctx, name)
	if err != nil {
		return nil, storeErr("get tag", err)
	}
	return tag, nil
}

func (s *taxonomyService) DeleteTag(ctx context.Context, id string) (bool, error) {
	return s.tags.Delete(ctx, id)
}

func (s *taxonomyService) CreateCategory(ctx context.Context, name, description string) (*model.Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalidf("category name is required")
	}
	if _, err := s.categories.GetByName(ctx, name); err == nil {
		return nil, invalidf("category %q already exists", name)
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeErr("lookup category", err)
	}
	c := &model.Category{ID: uuid.New().String(), Name: name, Description: description, CreatedAt: time.Now().UTC()}
	if err := s.categories.Create(ctx, c); err != nil {
		return nil, storeErr("create category", err)
	}
	return c, nil
}

func (s *taxonomyService) ListCategories(ctx context.Context) ([]*model.Category, error) {
	return s.categories.List(ctx)
}

func (s *taxonomyService) GetCategory(ctx context.Context, id string) (*model.Category, error) {
	c, err := s.categories.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr("get category", err)
	}
	return c, nil
}

func (s *taxonomyService) GetCategoryByName(ctx context.Context, name string) (*model.Category, error) {
	c, err := s.categories.GetByName(ctx, name)
	if err != nil {
		return nil, storeErr("get category", err)
	}
	return c, nil
}

func (s *taxonomyService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return s.categories.Delete(ctx, id)
}
