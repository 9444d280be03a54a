package service

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
	"github.com/d60-Lab/blog-engine/pkg/logger"
)

var tracer trace.Tracer = otel.Tracer("github.com/d60-Lab/blog-engine/internal/service")

// EngagementService 组装对外的文章视图，记录浏览，汇总互动
type EngagementService interface {
	Decorate(ctx context.Context, post *model.Post, viewerID string) (*PostDetail, error)
	DecorateAll(ctx context.Context, posts []*model.Post, viewerID string) ([]*PostDetail, error)
	// RecordView is best-effort: failures are logged, never returned.
	RecordView(ctx context.Context, postID, userID string)
	Insights(ctx context.Context, postID string) (*PostInsights, error)
	// Authors resolves display fields for ids with the Unknown fallback.
	Authors(ctx context.Context, ids []string) map[string]Author
}

type engagementService struct {
	posts    repository.PostRepository
	likes    repository.LikeRepository
	views    repository.ViewRepository
	comments repository.CommentRepository
	saved    repository.SavedPostRepository
	tags     PostTagService
	profiles ProfileDirectory
}

func NewEngagementService(
	posts repository.PostRepository,
	likes repository.LikeRepository,
	views repository.ViewRepository,
	comments repository.CommentRepository,
	saved repository.SavedPostRepository,
	tags PostTagService,
	profiles ProfileDirectory,
) EngagementService {
	return &engagementService{
		posts:    posts,
		likes:    likes,
		views:    views,
		comments: comments,
		saved:    saved,
		tags:     tags,
		profiles: profiles,
	}
}

func (s *engagementService) Decorate(ctx context.Context, post *model.Post, viewerID string) (*PostDetail, error) {
	res, err := s.DecorateAll(ctx, []*model.Post{post}, viewerID)
	if err != nil {
		return nil, err
	}
	return res[0], nil
}

func (s *engagementService) DecorateAll(ctx context.Context, posts []*model.Post, viewerID string) ([]*PostDetail, error) {
	authorIDs := make([]string, len(posts))
	for i, p := range posts {
		authorIDs[i] = p.UserID
	}
	authors := s.Authors(ctx, authorIDs)

	res := make([]*PostDetail, 0, len(posts))
	for _, p := range posts {
		d := &PostDetail{Post: *p, Author: authors[p.UserID]}

		tagIDs, err := s.tags.TagIDsOf(ctx, p.ID)
		if err != nil {
			return nil, fmt.Errorf("load tags of post %s: %w", p.ID, err)
		}
		d.TagIDs = tagIDs

		if d.LikeCount, err = s.likes.Count(ctx, p.ID); err != nil {
			return nil, fmt.Errorf("count likes of post %s: %w", p.ID, err)
		}
		if viewerID != "" {
			if d.LikedByMe, err = s.likes.Exists(ctx, p.ID, viewerID); err != nil {
				return nil, fmt.Errorf("like status of post %s: %w", p.ID, err)
			}
		}
		res = append(res, d)
	}
	return res, nil
}

func (s *engagementService) Authors(ctx context.Context, ids []string) map[string]Author {
	profiles, err := s.profiles.ByIDs(ctx, ids)
	if err != nil {
		logger.Warn("resolve author profiles failed", zap.Int("ids", len(ids)), zap.Error(err))
	}
	res := make(map[string]Author, len(ids))
	for _, id := range ids {
		res[id] = authorOf(id, profiles[id])
	}
	return res
}

func (s *engagementService) RecordView(ctx context.Context, postID, userID string) {
	if userID == "" {
		return
	}
	if _, err := s.views.CreateIfAbsent(ctx, postID, userID); err != nil {
		logger.Warn("record view failed", zap.String("post_id", postID), zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *engagementService) Insights(ctx context.Context, postID string) (*PostInsights, error) {
	ctx, span := tracer.Start(ctx, "EngagementService.Insights", trace.WithAttributes(attribute.String("post.id", postID)))
	defer span.End()

	if _, err := s.posts.GetByID(ctx, postID); err != nil {
		return nil, storeErr("get post", err)
	}

	var (
		views    []*model.PostView
		likers   []string
		comments []*model.Comment
		savers   []string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		views, err = s.views.ListByPost(gctx, postID)
		return err
	})
	g.Go(func() (err error) {
		likers, err = s.likes.ListUserIDs(gctx, postID)
		return err
	})
	g.Go(func() (err error) {
		comments, err = s.comments.ListByPost(gctx, postID)
		return err
	})
	g.Go(func() (err error) {
		savers, err = s.saved.ListUserIDsByPost(gctx, postID)
		return err
	})
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("load insights of post %s: %w", postID, err)
	}

	viewers := make([]string, 0, len(views))
	for _, v := range views {
		if v.UserID != nil {
			viewers = append(viewers, *v.UserID)
		}
	}
	ids := make([]string, 0, len(viewers)+len(likers)+len(comments)+len(savers))
	ids = append(ids, viewers...)
	ids = append(ids, likers...)
	ids = append(ids, savers...)
	for _, c := range comments {
		ids = append(ids, c.AuthorID)
	}
	authors := s.Authors(ctx, ids)
	span.SetAttributes(attribute.Int("insights.users", len(authors)))

	out := &PostInsights{
		PostID:        postID,
		ViewsCount:    len(views),
		ViewedBy:      pick(authors, viewers),
		LikesCount:    len(likers),
		LikedBy:       pick(authors, likers),
		CommentsCount: len(comments),
		Comments:      make([]CommentDetail, 0, len(comments)),
		SavesCount:    len(savers),
		SavedBy:       pick(authors, savers),
	}
	for _, c := range comments {
		out.Comments = append(out.Comments, CommentDetail{Comment: *c, Author: authors[c.AuthorID]})
	}
	return out, nil
}

func pick(authors map[string]Author, ids []string) []Author {
	res := make([]Author, 0, len(ids))
	for _, id := range ids {
		res = append(res, authors[id])
	}
	return res
}
