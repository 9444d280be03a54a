package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/internal/repository"
)

const (
	relatedLimit = 5
	dateLayout   = "2006-01-02"
	monthLayout  = "2006-01"
)

// FilterCriteria 多条件过滤：同一条件内为 OR，不同条件之间为 AND
type FilterCriteria struct {
	Authors    []string // usernames
	Categories []string // category names
	Tags       []string // tag names, case-insensitive
	Locations  []string // substrings of location_tag
	Dates      []string // 2006-01-02, unparseable values are skipped
}

// SplitList splits a comma separated query value, dropping blanks.
func SplitList(raw string) []string {
	var res []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			res = append(res, part)
		}
	}
	return res
}

// DiscoveryService 发现：过滤、信息流、搜索、归档、相关推荐
type DiscoveryService interface {
	Filter(ctx context.Context, c FilterCriteria, viewerID string) ([]*PostDetail, error)
	AllPublished(ctx context.Context, viewerID string) ([]*PostDetail, error)
	Feed(ctx context.Context, page int, viewerID string) ([]*PostDetail, error)
	Search(ctx context.Context, query string, page int, viewerID string) ([]*PostDetail, error)
	Archive(ctx context.Context, viewerID string) ([]ArchiveGroup, error)
	Related(ctx context.Context, postID, viewerID string) ([]*PostDetail, error)
	FilterOptions(ctx context.Context) (*FilterOptions, error)
}

type discoveryService struct {
	posts      repository.PostRepository
	tags       repository.TagRepository
	categories repository.CategoryRepository
	postTags   PostTagService
	engagement EngagementService
	profiles   ProfileDirectory
	pageSize   int
	now        func() time.Time
}

func NewDiscoveryService(
	posts repository.PostRepository,
	tags repository.TagRepository,
	categories repository.CategoryRepository,
	postTags PostTagService,
	engagement EngagementService,
	profiles ProfileDirectory,
	pageSize int,
) DiscoveryService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &discoveryService{
		posts:      posts,
		tags:       tags,
		categories: categories,
		postTags:   postTags,
		engagement: engagement,
		profiles:   profiles,
		pageSize:   pageSize,
		now:        utcNow,
	}
}

func (s *discoveryService) released() repository.PostQuery {
	now := s.now()
	return repository.PostQuery{PublishedOnly: true, ReleasedBy: &now}
}

func (s *discoveryService) Filter(ctx context.Context, c FilterCriteria, viewerID string) ([]*PostDetail, error) {
	var sets [][]string
	add := func(values []string, resolve func(context.Context, []string) ([]string, error)) error {
		if len(values) == 0 {
			return nil
		}
		ids, err := resolve(ctx, values)
		if err != nil {
			return err
		}
		sets = append(sets, ids)
		return nil
	}
	if err := add(c.Authors, s.byAuthors); err != nil {
		return nil, err
	}
	if err := add(c.Categories, s.byCategories); err != nil {
		return nil, err
	}
	if err := add(c.Tags, s.byTags); err != nil {
		return nil, err
	}
	if err := add(c.Locations, s.byLocations); err != nil {
		return nil, err
	}
	if err := add(c.Dates, s.byDates); err != nil {
		return nil, err
	}

	if len(sets) == 0 {
		return s.AllPublished(ctx, viewerID)
	}
	q := s.released()
	q.IDs = intersect(sets)
	return s.list(ctx, q, viewerID)
}

func (s *discoveryService) byAuthors(ctx context.Context, usernames []string) ([]string, error) {
	var ids []string
	for _, name := range usernames {
		p, err := s.profiles.ByUsername(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve author %q: %w", name, err)
		}
		q := s.released()
		q.UserID = p.ID
		found, err := s.posts.ListIDs(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("posts of author %q: %w", name, err)
		}
		ids = append(ids, found...)
	}
	return ids, nil
}

func (s *discoveryService) byCategories(ctx context.Context, names []string) ([]string, error) {
	catIDs := []string{}
	for _, name := range names {
		c, err := s.categories.GetByName(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve category %q: %w", name, err)
		}
		catIDs = append(catIDs, c.ID)
	}
	q := s.released()
	q.CategoryIDs = catIDs
	return s.posts.ListIDs(ctx, q)
}

func (s *discoveryService) byTags(ctx context.Context, names []string) ([]string, error) {
	postIDs := []string{}
	for _, name := range names {
		t, err := s.tags.GetByName(ctx, name)
		if errors.Is(err, repository.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("resolve tag %q: %w", name, err)
		}
		found, err := s.postTags.PostsOf(ctx, t.ID)
		if err != nil {
			return nil, fmt.Errorf("posts of tag %q: %w", name, err)
		}
		postIDs = append(postIDs, found...)
	}
	q := s.released()
	q.IDs = postIDs
	return s.posts.ListIDs(ctx, q)
}

func (s *discoveryService) byLocations(ctx context.Context, locations []string) ([]string, error) {
	var ids []string
	for _, loc := range locations {
		q := s.released()
		q.LocationContains = loc
		found, err := s.posts.ListIDs(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("posts at %q: %w", loc, err)
		}
		ids = append(ids, found...)
	}
	return ids, nil
}

func (s *discoveryService) byDates(ctx context.Context, dates []string) ([]string, error) {
	var ids []string
	for _, raw := range dates {
		day, err := time.ParseInLocation(dateLayout, raw, time.UTC)
		if err != nil {
			continue
		}
		from, to := day, day.Add(24*time.Hour-time.Nanosecond)
		q := s.released()
		q.PublishedFrom, q.PublishedTo = &from, &to
		found, err := s.posts.ListIDs(ctx, q)
		if err != nil {
			return nil, fmt.Errorf("posts on %s: %w", raw, err)
		}
		ids = append(ids, found...)
	}
	return ids, nil
}

// intersect returns the ids present in every set, never nil.
func intersect(sets [][]string) []string {
	counts := make(map[string]int)
	for _, set := range sets {
		seen := make(map[string]struct{}, len(set))
		for _, id := range set {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			counts[id]++
		}
	}
	res := []string{}
	for id, n := range counts {
		if n == len(sets) {
			res = append(res, id)
		}
	}
	return res
}

func (s *discoveryService) AllPublished(ctx context.Context, viewerID string) ([]*PostDetail, error) {
	return s.list(ctx, s.released(), viewerID)
}

func (s *discoveryService) page(page int) (offset, limit int) {
	if page < 1 {
		page = 1
	}
	return (page - 1) * s.pageSize, s.pageSize
}

func (s *discoveryService) Feed(ctx context.Context, page int, viewerID string) ([]*PostDetail, error) {
	q := s.released()
	q.Offset, q.Limit = s.page(page)
	return s.list(ctx, q, viewerID)
}

func (s *discoveryService) Search(ctx context.Context, query string, page int, viewerID string) ([]*PostDetail, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, invalidf("search query is required")
	}
	q := s.released()
	q.TitleContains = query
	q.Offset, q.Limit = s.page(page)
	return s.list(ctx, q, viewerID)
}

func (s *discoveryService) Archive(ctx context.Context, viewerID string) ([]ArchiveGroup, error) {
	posts, err := s.AllPublished(ctx, viewerID)
	if err != nil {
		return nil, err
	}
	var groups []ArchiveGroup
	index := make(map[string]int)
	for _, p := range posts {
		month := p.PublishedAt.UTC().Format(monthLayout)
		i, ok := index[month]
		if !ok {
			i = len(groups)
			index[month] = i
			groups = append(groups, ArchiveGroup{Month: month})
		}
		groups[i].Posts = append(groups[i].Posts, p)
	}
	return groups, nil
}

func (s *discoveryService) Related(ctx context.Context, postID, viewerID string) ([]*PostDetail, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		return nil, storeErr("get post", err)
	}
	q := s.released()
	q.ExcludeID = postID
	candidates, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list related candidates: %w", err)
	}

	hashtags := make(map[string]struct{}, len(post.Hashtags))
	for _, h := range post.Hashtags {
		hashtags[h] = struct{}{}
	}
	var matches []*model.Post
	for _, c := range candidates {
		if len(matches) == relatedLimit {
			break
		}
		if sameCategory(post, c) || overlaps(hashtags, c.Hashtags) {
			matches = append(matches, c)
		}
	}
	return s.engagement.DecorateAll(ctx, matches, viewerID)
}

func sameCategory(a, b *model.Post) bool {
	return a.CategoryID != nil && b.CategoryID != nil && *a.CategoryID == *b.CategoryID
}

func overlaps(set map[string]struct{}, tags []string) bool {
	for _, t := range tags {
		if _, ok := set[t]; ok {
			return true
		}
	}
	return false
}

func (s *discoveryService) FilterOptions(ctx context.Context) (*FilterOptions, error) {
	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	tags, err := s.tags.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tags: %w", err)
	}
	posts, err := s.posts.List(ctx, s.released())
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}

	var authorIDs, locations []string
	seenAuthor := make(map[string]struct{})
	seenLocation := make(map[string]struct{})
	for _, p := range posts {
		if _, ok := seenAuthor[p.UserID]; !ok {
			seenAuthor[p.UserID] = struct{}{}
			authorIDs = append(authorIDs, p.UserID)
		}
		loc := strings.TrimSpace(p.LocationTag)
		if loc == "" {
			continue
		}
		if _, ok := seenLocation[loc]; !ok {
			seenLocation[loc] = struct{}{}
			locations = append(locations, loc)
		}
	}
	resolved := s.engagement.Authors(ctx, authorIDs)

	opts := &FilterOptions{
		Categories: categories,
		Tags:       tags,
		Authors:    pick(resolved, authorIDs),
		Locations:  locations,
	}
	if opts.Locations == nil {
		opts.Locations = []string{}
	}
	return opts, nil
}

func (s *discoveryService) list(ctx context.Context, q repository.PostQuery, viewerID string) ([]*PostDetail, error) {
	posts, err := s.posts.List(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list posts: %w", err)
	}
	return s.engagement.DecorateAll(ctx, posts, viewerID)
}
