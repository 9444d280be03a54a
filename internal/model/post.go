package model

import (
	"time"

	"gorm.io/datatypes"
)

// 文章状态
const (
	PostStatusDraft     = "draft"
	PostStatusScheduled = "scheduled"
	PostStatusPublished = "published"
)

// Post 文章主体
type Post struct {
	ID                string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Title             string                      `json:"title" gorm:"type:varchar(255);not null"`
	ContentMarkdown   string                      `json:"content_markdown" gorm:"type:text"`
	ContentHTML       string                      `json:"content_html" gorm:"type:text"`
	Status            string                      `json:"status" gorm:"type:varchar(16);index;default:draft"`
	IsPublished       bool                        `json:"is_published" gorm:"index:idx_post_published"`
	PublishedAt       *time.Time                  `json:"published_at" gorm:"index:idx_post_published"`
	ScheduledFor      *time.Time                  `json:"scheduled_for"`
	UserID            string                      `json:"user_id" gorm:"type:varchar(36);index:idx_post_author;not null"`
	CategoryID        *string                     `json:"category_id" gorm:"type:varchar(36);index:idx_post_category"`
	Slug              string                      `json:"slug" gorm:"type:varchar(255);index"`
	MetaTitle         string                      `json:"meta_title" gorm:"type:varchar(255)"`
	MetaDescription   string                      `json:"meta_description" gorm:"type:varchar(255)"`
	FeaturedImageURL  string                      `json:"featured_image_url" gorm:"type:varchar(500)"`
	FeaturedImagePath string                      `json:"-" gorm:"type:varchar(500)"`
	Hashtags          datatypes.JSONSlice[string] `json:"hashtags"`
	LocationTag       string                      `json:"location_tag" gorm:"type:varchar(255)"`
	MentionedUserIDs  datatypes.JSONSlice[string] `json:"mentioned_user_ids"`
	CreatedAt         time.Time                   `json:"created_at"`
	UpdatedAt         time.Time                   `json:"updated_at"`
}

func (Post) TableName() string { return "posts" }

// Releasable 已发布且发布时间不晚于 now
func (p *Post) Releasable(now time.Time) bool {
	return p.IsPublished && p.PublishedAt != nil && !p.PublishedAt.After(now)
}
