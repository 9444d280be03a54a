package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
	"github.com/d60-Lab/blog-engine/pkg/logger"
)

const untitledPost = "Untitled Post"

// ImageUpload 随文章一起提交的题图
type ImageUpload struct {
	Filename string
	Body     io.Reader
}

// PostInput 创建/更新文章的入参。ID 为空表示新建。
// 更新时 TagIDs、Hashtags、MentionedUserIDs 为 nil 表示保持不变。
type PostInput struct {
	ID               string
	Title            string
	ContentMarkdown  string
	Status           string
	IsPublished      bool
	ScheduledFor     *time.Time
	CategoryID       *string
	TagIDs           []string
	Slug             string
	MetaTitle        string
	MetaDescription  string
	Hashtags         []string
	LocationTag      *string
	MentionedUserIDs []string
	Image            *ImageUpload
}

// PostService 文章生命周期
type PostService interface {
	CreateOrUpdate(ctx context.Context, in PostInput, authorID string) (*PostDetail, error)
	// Delete returns false when the post is missing or not owned by requestorID.
	Delete(ctx context.Context, postID, requestorID string) (bool, error)
	// Get hides unreleased posts from everyone but their author.
	Get(ctx context.Context, postID, viewerID string) (*PostDetail, error)
	ListByUser(ctx context.Context, userID, viewerID string) ([]*PostDetail, error)
	// MyPosts groups every post of userID by status.
	MyPosts(ctx context.Context, userID string) (map[string][]*PostDetail, error)
	ListByCategory(ctx context.Context, categoryID, viewerID string) ([]*PostDetail, error)
	ListByTag(ctx context.Context, tagID, viewerID string) ([]*PostDetail, error)
}

type postService struct {
	posts      repository.PostRepository
	tags       repository.TagRepository
	categories repository.CategoryRepository
	postTags   PostTagService
	engagement EngagementService
	profiles   ProfileDirectory
	renderer   MarkdownRenderer
	storage    ObjectStorage
	notifier   *Notifier
	now        func() time.Time
}

func NewPostService(
	posts repository.PostRepository,
	tags repository.TagRepository,
	categories repository.CategoryRepository,
	postTags PostTagService,
	engagement EngagementService,
	profiles ProfileDirectory,
	renderer MarkdownRenderer,
	storage ObjectStorage,
	notifier *Notifier,
) PostService {
	return &postService{
		posts:      posts,
		tags:       tags,
		categories: categories,
		postTags:   postTags,
		engagement: engagement,
		profiles:   profiles,
		renderer:   renderer,
		storage:    storage,
		notifier:   notifier,
		now:        utcNow,
	}
}

func (s *postService) CreateOrUpdate(ctx context.Context, in PostInput, authorID string) (*PostDetail, error) {
	if authorID == "" {
		return nil, invalidf("author is required")
	}
	switch in.Status {
	case "", model.PostStatusDraft, model.PostStatusScheduled, model.PostStatusPublished:
	default:
		return nil, invalidf("unknown status %q", in.Status)
	}
	if err := s.validateRefs(ctx, in); err != nil {
		return nil, err
	}

	now := s.now()
	post := &model.Post{ID: uuid.New().String(), UserID: authorID, CreatedAt: now}
	var previousImage string
	if in.ID != "" {
		existing, err := s.posts.GetOwned(ctx, in.ID, authorID)
		if err != nil {
			return nil, storeErr("get post", err)
		}
		post = existing
		previousImage = existing.FeaturedImagePath
	}
	if err := s.apply(post, in, now); err != nil {
		return nil, err
	}

	var uploadedKey string
	if in.Image != nil && s.storage != nil {
		key := "posts/" + uuid.New().String() + strings.ToLower(path.Ext(in.Image.Filename))
		url, err := s.storage.Upload(ctx, key, in.Image.Body)
		if err != nil {
			return nil, fmt.Errorf("upload featured image: %w", err)
		}
		post.FeaturedImageURL, post.FeaturedImagePath = url, key
		uploadedKey = key
	}

	if err := s.posts.Save(ctx, post); err != nil {
		if uploadedKey != "" {
			s.dropImage(ctx, uploadedKey)
		}
		return nil, fmt.Errorf("save post: %w", err)
	}
	if uploadedKey != "" && previousImage != "" {
		s.dropImage(ctx, previousImage)
	}

	if in.TagIDs != nil || in.ID == "" {
		if err := s.postTags.Assign(ctx, post.ID, in.TagIDs); err != nil {
			return nil, err
		}
	}

	s.notifyMentions(ctx, post)
	return s.engagement.Decorate(ctx, post, authorID)
}

func (s *postService) validateRefs(ctx context.Context, in PostInput) error {
	if in.CategoryID != nil && *in.CategoryID != "" {
		if _, err := s.categories.GetByID(ctx, *in.CategoryID); err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return invalidf("invalid category id %s", *in.CategoryID)
			}
			return fmt.Errorf("lookup category: %w", err)
		}
	}
	tagIDs := dedupe(in.TagIDs)
	if len(tagIDs) == 0 {
		return nil
	}
	found, err := s.tags.ExistingIDs(ctx, tagIDs)
	if err != nil {
		return fmt.Errorf("lookup tags: %w", err)
	}
	if len(found) == len(tagIDs) {
		return nil
	}
	known := make(map[string]struct{}, len(found))
	for _, id := range found {
		known[id] = struct{}{}
	}
	var missing []string
	for _, id := range tagIDs {
		if _, ok := known[id]; !ok {
			missing = append(missing, id)
		}
	}
	return invalidf("invalid tag ids: %s", strings.Join(missing, ", "))
}

// apply copies the input onto post and derives body, slug, SEO fields and
// the lifecycle state.
func (s *postService) apply(post *model.Post, in PostInput, now time.Time) error {
	post.Title = in.Title
	post.ContentMarkdown = in.ContentMarkdown
	post.ScheduledFor = nil
	if in.ScheduledFor != nil {
		t := in.ScheduledFor.UTC()
		post.ScheduledFor = &t
	}
	post.CategoryID = in.CategoryID
	if post.CategoryID != nil && *post.CategoryID == "" {
		post.CategoryID = nil
	}
	if in.Status != "" {
		post.Status = in.Status
	}
	if in.Hashtags != nil || post.Hashtags == nil {
		post.Hashtags = append([]string{}, in.Hashtags...)
	}
	if in.MentionedUserIDs != nil || post.MentionedUserIDs == nil {
		post.MentionedUserIDs = append([]string{}, in.MentionedUserIDs...)
	}
	if in.LocationTag != nil {
		post.LocationTag = strings.TrimSpace(*in.LocationTag)
	}
	post.UpdatedAt = now

	post.ContentHTML = ""
	if in.ContentMarkdown != "" {
		html, err := s.renderer.ToHTML(in.ContentMarkdown)
		if err != nil {
			return fmt.Errorf("render markdown: %w", err)
		}
		post.ContentHTML = html
	}

	post.Slug = strings.TrimSpace(in.Slug)
	if post.Slug == "" {
		post.Slug = Slugify(post.Title)
	}
	post.MetaTitle = strings.TrimSpace(in.MetaTitle)
	if post.MetaTitle == "" {
		post.MetaTitle = post.Title
		if strings.TrimSpace(post.Title) == "" {
			post.MetaTitle = untitledPost
		}
	}
	post.MetaDescription = strings.TrimSpace(in.MetaDescription)
	if post.MetaDescription == "" {
		desc, err := MetaDescription(s.renderer, in.ContentMarkdown)
		if err != nil {
			return fmt.Errorf("render meta description: %w", err)
		}
		post.MetaDescription = desc
	}

	applyLifecycle(post, in.IsPublished, now)
	return nil
}

// applyLifecycle derives status, publication flag and published_at.
// A future schedule always wins; otherwise the post is published when the
// flag or the requested status says so, or when a schedule has come due.
func applyLifecycle(post *model.Post, publish bool, now time.Time) {
	if post.ScheduledFor != nil && post.ScheduledFor.After(now) {
		post.Status = model.PostStatusScheduled
		post.IsPublished = false
		post.PublishedAt = nil
		return
	}
	due := post.Status == model.PostStatusScheduled && post.ScheduledFor != nil
	post.IsPublished = publish || due || post.Status == model.PostStatusPublished
	if post.IsPublished {
		if post.PublishedAt == nil {
			t := now
			post.PublishedAt = &t
		}
		post.Status = model.PostStatusPublished
		return
	}
	post.PublishedAt = nil
	post.Status = model.PostStatusDraft
}

func (s *postService) notifyMentions(ctx context.Context, post *model.Post) {
	if len(post.MentionedUserIDs) == 0 {
		return
	}
	name := s.username(ctx, post.UserID)
	ref := post.ID
	for _, uid := range dedupe(post.MentionedUserIDs) {
		s.notifier.Notify(ctx, post.UserID, &model.Notification{
			Type:          model.NotificationMention,
			Content:       fmt.Sprintf("You were mentioned in a post by %s", name),
			TargetUserID:  uid,
			ReferenceID:   &ref,
			ReferenceType: model.ReferencePost,
		})
	}
}

func (s *postService) username(ctx context.Context, userID string) string {
	p, err := s.profiles.ByID(ctx, userID)
	if err != nil {
		return unknownUsername
	}
	return authorOf(userID, p).Username
}

func (s *postService) dropImage(ctx context.Context, key string) {
	if s.storage == nil || key == "" {
		return
	}
	if err := s.storage.Delete(ctx, key); err != nil {
		logger.Warn("delete featured image failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *postService) Delete(ctx context.Context, postID, requestorID string) (bool, error) {
	post, err := s.posts.GetOwned(ctx, postID, requestorID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, nil
		}
		return false, fmt.Errorf("get post: %w", err)
	}
	if err := s.postTags.Assign(ctx, postID, nil); err != nil {
		return false, err
	}
	if err := s.posts.Delete(ctx, postID); err != nil {
		return false, fmt.Errorf("delete post: %w", err)
	}
	s.dropImage(ctx, post.FeaturedImagePath)
	return true, nil
}

func (s *postService) Get(ctx context.Context, postID, viewerID string) (*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeErr("get post", err)
	}
	if post.UserID != viewerID && !post.Releasable(s.now()) {
		return nil, ErrNotFound
	}
	return s.engagement.Decorate(ctx, post, viewerID)
}

func (s *postService) released() repository.PostQuery {
	now := s.now()
	return repository.PostQuery{PublishedOnly: true, ReleasedBy: &now}
}

func (s *postService) ListByUser(ctx context.Context, userID, viewerID string) ([]*PostDetail, error) {
	q := s.released()
	q.UserID = userID
	return s.list(ctx, q, viewerID)
}

func (s *postService) MyPosts(ctx context.Context, userID string) (map[string][]*PostDetail, error) {
	details, err := s.list(ctx, repository.PostQuery{UserID: userID, OrderBy: repository.OrderCreatedDesc}, userID)
	if err != nil {
		return nil, err
	}
	groups := make(map[string][]*PostDetail)
	for _, d := range details {
		status := d.Status
		if strings.TrimSpace(status) == "" {
			status = model.PostStatusDraft
		}
		groups[status] = append(groups[status], d)
	}
	return groups, nil
}

func (s *postService) ListByCategory(ctx context.Context, categoryID, viewerID string) ([]*PostDetail, error) {
	q := s.released()
	q.CategoryIDs = []string{categoryID}
	return s.list(ctx, q, viewerID)
}

func (s *postService) ListByTag(ctx context.Context, tagID, viewerID string) ([]*PostDetail, error) {
	ids, err := s.postTags.PostsOf(ctx, tagID)
	if err != nil {
		return nil, fmt.Errorf("posts of tag %s: %w", tagID, err)
	}
	q := s.released()
	q.IDs = ids
	if q.IDs == nil {
		q.IDs = []string{}
	}
	return s.list(ctx, q, viewerID)
}

func (s *postService) list(ctx context.Context, q repository.PostQuery, viewerID string) ([]*PostDetail, error) {
	posts, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.engagement.DecorateAll(ctx, posts, viewerID)
}
