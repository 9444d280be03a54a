package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// PostQuery 文章条件查询；零值字段不参与过滤
type PostQuery struct {
	// IDs 非 nil 时按集合过滤，空集合不匹配任何行
	IDs       []string
	ExcludeID string
	UserID    string
	// CategoryIDs 非 nil 时按集合过滤
	CategoryIDs []string

	PublishedOnly bool
	// ReleasedBy 只返回 published_at <= ReleasedBy 的文章
	ReleasedBy    *time.Time
	PublishedFrom *time.Time
	PublishedTo   *time.Time

	LocationContains string
	TitleContains    string

	// OrderBy 默认按发布时间倒序
	OrderBy string
	Offset  int
	Limit   int
}

const (
	OrderPublishedDesc = "published_at DESC, created_at DESC"
	OrderCreatedDesc   = "created_at DESC"
)

// PostRepository 文章存储
type PostRepository interface {
	// Save 按主键 upsert
	Save(ctx context.Context, post *model.Post) error
	GetByID(ctx context.Context, id string) (*model.Post, error)
	// GetOwned 不存在与不属于 userID 一律返回 ErrNotFound
	GetOwned(ctx context.Context, id, userID string) (*model.Post, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, q PostQuery) ([]*model.Post, error)
	ListIDs(ctx context.Context, q PostQuery) ([]string, error)
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository { return &postRepository{db: db} }

func (r *postRepository) Save(ctx context.Context, post *model.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id string) (*model.Post, error) {
	var p model.Post
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error; err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *postRepository) GetOwned(ctx context.Context, id, userID string) (*model.Post, error) {
	var p model.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&p).Error
	if err != nil {
		return nil, mapNotFound(err)
	}
	return &p, nil
}

func (r *postRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.Post{}).Error
}

func (r *postRepository) List(ctx context.Context, q PostQuery) ([]*model.Post, error) {
	var res []*model.Post
	err := r.apply(r.db.WithContext(ctx).Model(&model.Post{}), q).Find(&res).Error
	return res, err
}

func (r *postRepository) ListIDs(ctx context.Context, q PostQuery) ([]string, error) {
	var ids []string
	err := r.apply(r.db.WithContext(ctx).Model(&model.Post{}), q).Pluck("id", &ids).Error
	return ids, err
}

func (r *postRepository) apply(tx *gorm.DB, q PostQuery) *gorm.DB {
	if q.IDs != nil {
		if len(q.IDs) == 0 {
			tx = tx.Where("1 = 0")
		} else {
			tx = tx.Where("id IN ?", q.IDs)
		}
	}
	if q.ExcludeID != "" {
		tx = tx.Where("id <> ?", q.ExcludeID)
	}
	if q.UserID != "" {
		tx = tx.Where("user_id = ?", q.UserID)
	}
	if q.CategoryIDs != nil {
		if len(q.CategoryIDs) == 0 {
			tx = tx.Where("1 = 0")
		} else {
			tx = tx.Where("category_id IN ?", q.CategoryIDs)
		}
	}
	if q.PublishedOnly {
		tx = tx.Where("is_published = ?", true)
	}
	if q.ReleasedBy != nil {
		tx = tx.Where("published_at <= ?", *q.ReleasedBy)
	}
	if q.PublishedFrom != nil {
		tx = tx.Where("published_at >= ?", *q.PublishedFrom)
	}
	if q.PublishedTo != nil {
		tx = tx.Where("published_at <= ?", *q.PublishedTo)
	}
	// LOWER + LIKE 兼容 postgres 与 sqlite（sqlite 没有 ILIKE）
	if q.LocationContains != "" {
		tx = tx.Where(`LOWER(location_tag) LIKE ? ESCAPE '\'`, likePattern(q.LocationContains))
	}
	if q.TitleContains != "" {
		tx = tx.Where(`LOWER(title) LIKE ? ESCAPE '\'`, likePattern(q.TitleContains))
	}

	order := q.OrderBy
	if order == "" {
		order = OrderPublishedDesc
	}
	tx = tx.Order(order)
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	return tx
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(strings.TrimSpace(s))) + "%"
}
