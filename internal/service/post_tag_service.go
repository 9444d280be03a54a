package service

import (
	"context"
	"fmt"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
)

// PostTagService 文章与标签的多对多关联
type PostTagService interface {
	// Assign replaces the full tag set of a post. Pass the complete desired set.
	Assign(ctx context.Context, postID string, tagIDs []string) error
	TagsOf(ctx context.Context, postID string) ([]*model.Tag, error)
	TagIDsOf(ctx context.Context, postID string) ([]string, error)
	PostsOf(ctx context.Context, tagID string) ([]string, error)
}

type postTagService struct {
	repo repository.PostTagRepository
}

func NewPostTagService(repo repository.PostTagRepository) PostTagService {
	return &postTagService{repo: repo}
}

func (s *postTagService) Assign(ctx context.Context, postID string, tagIDs []string) error {
	if err := s.repo.Replace(ctx, postID, dedupe(tagIDs)); err != nil {
		return fmt.Errorf("assign tags to post %s: %w", postID, err)
	}
	return nil
}

func (s *postTagService) TagsOf(ctx context.Context, postID string) ([]*model.Tag, error) {
	return s.repo.TagsOf(ctx, postID)
}

func (s *postTagService) TagIDsOf(ctx context.Context, postID string) ([]string, error) {
	return s.repo.TagIDsOf(ctx, postID)
}

func (s *postTagService) PostsOf(ctx context.Context, tagID string) ([]string, error) {
	return s.repo.PostIDsOf(ctx, tagID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	res := make([]string, 0, len(ids))
	for _, id := range ids {
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		res = append(res, id)
	}
	return res
}
