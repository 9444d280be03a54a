package service

import (
    "context"
    "fmt"

    "github.com/d60-Lab/blog-engine/internal/model"
    "github.com/d60-Lab/blog-engine/internal/repository"
)

// RelationshipService 关系链服务
type RelationshipService interface {
    // Follow 返回是否新建关注；关注自己或重复关注返回 false
    Follow(ctx context.Context, fromUserID, toUserID string) (bool, error)
    Unfollow(ctx context.Context, fromUserID, toUserID string) (bool, error)
    IsFollowing(ctx context.Context, fromUserID, toUserID string) (bool, error)
    ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]Author, error)
    ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]Author, error)
    Counts(ctx context.Context, userID string) (followers, following int64, err error)
}

type relationshipService struct {
    followRepo repository.FollowRepository
    engagement EngagementService
    notifier   *Notifier
}

func NewRelationshipService(followRepo repository.FollowRepository, engagement EngagementService, notifier *Notifier) RelationshipService {
    return &relationshipService{followRepo: followRepo, engagement: engagement, notifier: notifier}
}

func (s *relationshipService) Follow(ctx context.Context, fromUserID, toUserID string) (bool, error) {
    if fromUserID == toUserID {
        return false, nil
    }
    created, err := s.followRepo.Create(ctx, fromUserID, toUserID)
    if err != nil {
        return false, fmt.Errorf("follow %s: %w", toUserID, err)
    }
    if created {
        s.notify(ctx, model.NotificationFollow, "You have a new follower!", fromUserID, toUserID)
    }
    return created, nil
}

func (s *relationshipService) Unfollow(ctx context.Context, fromUserID, toUserID string) (bool, error) {
    removed, err := s.followRepo.Delete(ctx, fromUserID, toUserID)
    if err != nil {
        return false, fmt.Errorf("unfollow %s: %w", toUserID, err)
    }
    if removed {
        s.notify(ctx, model.NotificationUnfollow, "You lost a follower.", fromUserID, toUserID)
    }
    return removed, nil
}

func (s *relationshipService) notify(ctx context.Context, typ, content, fromUserID, toUserID string) {
    ref := fromUserID
    s.notifier.Notify(ctx, fromUserID, &model.Notification{
        Type:          typ,
        Content:       content,
        TargetUserID:  toUserID,
        ReferenceID:   &ref,
        ReferenceType: model.ReferenceUser,
    })
}

func (s *relationshipService) IsFollowing(ctx context.Context, fromUserID, toUserID string) (bool, error) {
    return s.followRepo.Exists(ctx, fromUserID, toUserID)
}

func (s *relationshipService) ListFollowing(ctx context.Context, userID string, page, pageSize int) ([]Author, error) {
    offset, limit := pageBounds(page, pageSize)
    items, err := s.followRepo.ListFollowings(ctx, userID, offset, limit)
    if err != nil { return nil, err }
    ids := make([]string, len(items))
    for i, it := range items { ids[i] = it.FolloweeID }
    return pick(s.engagement.Authors(ctx, ids), ids), nil
}

func (s *relationshipService) ListFollowers(ctx context.Context, userID string, page, pageSize int) ([]Author, error) {
    offset, limit := pageBounds(page, pageSize)
    items, err := s.followRepo.ListFollowers(ctx, userID, offset, limit)
    if err != nil { return nil, err }
    ids := make([]string, len(items))
    for i, it := range items { ids[i] = it.FollowerID }
    return pick(s.engagement.Authors(ctx, ids), ids), nil
}

func (s *relationshipService) Counts(ctx context.Context, userID string) (int64, int64, error) {
    followers, err := s.followRepo.CountFollowers(ctx, userID)
    if err != nil { return 0, 0, err }
    following, err := s.followRepo.CountFollowings(ctx, userID)
    if err != nil { return 0, 0, err }
    return followers, following, nil
}

func pageBounds(page, pageSize int) (offset, limit int) {
    if page < 1 { page = 1 }
    if pageSize < 1 { pageSize = 10 }
    return (page - 1) * pageSize, pageSize
}
