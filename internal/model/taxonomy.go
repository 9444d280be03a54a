package model

import "time"

// Tag 标签（与文章多对多）
type Tag struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(64);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Tag) TableName() string { return "tags" }

// Category 分类（一篇文章至多一个分类）
type Category struct {
	ID          string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Name        string    `json:"name" gorm:"type:varchar(64);uniqueIndex;not null"`
	Description string    `json:"description" gorm:"type:text"`
	CreatedAt   time.Time `json:"created_at"`
}

func (Category) TableName() string { return "categories" }

// PostTag 文章-标签关联，行存在即事实，没有独立 ID
type PostTag struct {
	PostID string `json:"post_id" gorm:"primaryKey;type:varchar(36)"`
	TagID  string `json:"tag_id" gorm:"primaryKey;type:varchar(36);index:idx_post_tag_tag"`
}

func (PostTag) TableName() string { return "post_tags" }
