package model

import "time"

// PostLike 文章点赞，(post_id, user_id) 唯一
type PostLike struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);uniqueIndex:ux_post_like_pair;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:ux_post_like_pair;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (PostLike) TableName() string { return "post_likes" }

// CommentLike 评论点赞，(comment_id, user_id) 唯一
type CommentLike struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	CommentID string    `json:"comment_id" gorm:"type:varchar(36);uniqueIndex:ux_comment_like_pair;not null"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:ux_comment_like_pair;not null"`
	CreatedAt time.Time `json:"created_at"`
}

func (CommentLike) TableName() string { return "comment_likes" }

// Comment 评论，只有作者可以修改/删除
type Comment struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);index:idx_comment_post;not null"`
	AuthorID  string    `json:"author_id" gorm:"type:varchar(36);index;not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	LikeCount int       `json:"like_count" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at" gorm:"index:idx_comment_post"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Comment) TableName() string { return "comments" }

// PostView 浏览记录（只追加），同一 (post_id, user_id) 只保留一条
type PostView struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	PostID    string    `json:"post_id" gorm:"type:varchar(36);uniqueIndex:ux_view_pair;not null"`
	UserID    *string   `json:"user_id" gorm:"type:varchar(36);uniqueIndex:ux_view_pair"`
	CreatedAt time.Time `json:"created_at" gorm:"index"`
}

func (PostView) TableName() string { return "post_views" }

// SavedPost 收藏，可归入某个收藏夹
type SavedPost struct {
	ID           string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID       string    `json:"user_id" gorm:"type:varchar(36);uniqueIndex:ux_saved_pair;not null"`
	PostID       string    `json:"post_id" gorm:"type:varchar(36);uniqueIndex:ux_saved_pair;index;not null"`
	CollectionID *string   `json:"collection_id" gorm:"type:varchar(36);index"`
	CreatedAt    time.Time `json:"created_at"`
}

func (SavedPost) TableName() string { return "saved_posts" }

// Collection 用户自建收藏夹；删除时只把收藏的 collection_id 置空
type Collection struct {
	ID        string    `json:"id" gorm:"primaryKey;type:varchar(36)"`
	UserID    string    `json:"user_id" gorm:"type:varchar(36);index;not null"`
	Name      string    `json:"name" gorm:"type:varchar(128);not null"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Collection) TableName() string { return "collections" }
