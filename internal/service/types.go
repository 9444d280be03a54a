package service

import (
	"context"
	"io"

	"github.com/d60-Lab/blog-engine/internal/model"
)

// ProfileDirectory resolves display profiles. Implemented by directory.Directory.
type ProfileDirectory interface {
	ByID(ctx context.Context, id string) (*model.Profile, error)
	ByIDs(ctx context.Context, ids []string) (map[string]*model.Profile, error)
	ByUsername(ctx context.Context, username string) (*model.Profile, error)
}

// MarkdownRenderer turns markdown into HTML without side effects.
type MarkdownRenderer interface {
	ToHTML(src string) (string, error)
}

// ObjectStorage stores binary blobs under a key and returns their public URL.
type ObjectStorage interface {
	Upload(ctx context.Context, key string, r io.Reader) (string, error)
	Delete(ctx context.Context, key string) error
}

const (
	unknownFullName = "Unknown"
	unknownUsername = "unknown"
)

// Author 对外展示的用户信息
type Author struct {
	ID        string `json:"id"`
	FullName  string `json:"full_name"`
	Username  string `json:"username"`
	AvatarURL string `json:"avatar_url"`
}

// authorOf applies the display fallback: a missing profile or blank fields
// become "Unknown" / "unknown".
func authorOf(id string, p *model.Profile) Author {
	a := Author{ID: id, FullName: unknownFullName, Username: unknownUsername}
	if p == nil {
		return a
	}
	if p.FullName != "" {
		a.FullName = p.FullName
	}
	if p.Username != "" {
		a.Username = p.Username
	}
	a.AvatarURL = p.AvatarURL
	return a
}

// PostDetail 对外输出的文章
type PostDetail struct {
	model.Post
	Author       Author   `json:"author"`
	TagIDs       []string `json:"tag_ids"`
	LikeCount    int64    `json:"like_count"`
	LikedByMe    bool     `json:"liked_by_me"`
	CollectionID *string  `json:"collection_id,omitempty"`
}

// CommentDetail 带作者信息的评论
type CommentDetail struct {
	model.Comment
	Author Author `json:"author"`
}

// PostInsights 文章互动汇总
type PostInsights struct {
	PostID        string          `json:"post_id"`
	ViewsCount    int             `json:"views_count"`
	ViewedBy      []Author        `json:"viewed_by"`
	LikesCount    int             `json:"likes_count"`
	LikedBy       []Author        `json:"liked_by"`
	CommentsCount int             `json:"comments_count"`
	Comments      []CommentDetail `json:"comments"`
	SavesCount    int             `json:"saves_count"`
	SavedBy       []Author        `json:"saved_by"`
}

// ArchiveGroup 按年月归档
type ArchiveGroup struct {
	Month string        `json:"month"`
	Posts []*PostDetail `json:"posts"`
}

// FilterOptions 过滤面板可选项
type FilterOptions struct {
	Categories []*model.Category `json:"categories"`
	Tags       []*model.Tag      `json:"tags"`
	Authors    []Author          `json:"authors"`
	Locations  []string          `json:"locations"`
}
