package main

import (
    "context"
    "fmt"
    "math/rand"
    "os"
    "sort"
    "strconv"
    "time"

    "github.com/d60-Lab/blog-engine/config"
    "github.com/d60-Lab/blog-engine/internal/directory"
    "github.com/d60-Lab/blog-engine/internal/model"
    "github.com/d60-Lab/blog-engine/internal/repository"
    "github.com/d60-Lab/blog-engine/internal/service"
    "github.com/d60-Lab/blog-engine/pkg/database"
    "github.com/d60-Lab/blog-engine/pkg/markdown"
    "github.com/d60-Lab/blog-engine/pkg/storage"
)

func must[T any](v T, err error) T { if err != nil { panic(err) }; return v }

func envInt(key string, def int) int {
    if s := os.Getenv(key); s != "" {
        if n, err := strconv.Atoi(s); err == nil && n > 0 { return n }
    }
    return def
}

func pct(ds []time.Duration, p float64) time.Duration {
    if len(ds) == 0 { return 0 }
    idx := int(float64(len(ds)-1) * p)
    return ds[idx]
}

var (
    categoryNames = []string{"Travel", "Food", "Tech", "Life"}
    tagNames      = []string{"go", "postgres", "redis", "hiking", "coffee", "books"}
    locations     = []string{"Berlin", "Paris", "Tokyo", "Lisbon", ""}
)

func main() {
    cfg := must(config.Load())
    db := must(database.InitDB(cfg))
    ctx := context.Background()

    USERS := envInt("USERS", 50)
    POSTS := envInt("POSTS", 500)
    rng := rand.New(rand.NewSource(time.Now().UnixNano()))

    store := must(storage.NewLocal(cfg.Storage.Dir, cfg.Storage.BaseURL))
    profiles := directory.New(repository.NewProfileRepository(db), nil, 0)
    postRepo := repository.NewPostRepository(db)
    tagRepo := repository.NewTagRepository(db)
    catRepo := repository.NewCategoryRepository(db)
    likeRepo := repository.NewLikeRepository(db)
    commentRepo := repository.NewCommentRepository(db)
    savedRepo := repository.NewSavedPostRepository(db)

    // seed 走同步通知，跑完即落库
    notifier := service.NewNotifier(service.NewNotificationService(repository.NewNotificationRepository(db)), config.NotificationsConfig{})
    postTags := service.NewPostTagService(repository.NewPostTagRepository(db))
    engagement := service.NewEngagementService(postRepo, likeRepo, repository.NewViewRepository(db), commentRepo, savedRepo, postTags, profiles)
    taxonomy := service.NewTaxonomyService(tagRepo, catRepo)
    posts := service.NewPostService(postRepo, tagRepo, catRepo, postTags, engagement, profiles, markdown.NewRenderer(), store, notifier)
    likes := service.NewLikeService(likeRepo, postRepo, engagement, notifier)
    comments := service.NewCommentService(commentRepo, postRepo, engagement, notifier)
    rels := service.NewRelationshipService(repository.NewFollowRepository(db), engagement, notifier)

    userIDs := make([]string, USERS)
    for i := range userIDs {
        id := fmt.Sprintf("seed-u%04d", i)
        userIDs[i] = id
        _ = profiles.Upsert(ctx, &model.Profile{ID: id, Username: fmt.Sprintf("user%04d", i), FullName: fmt.Sprintf("Seed User %d", i)})
    }

    catIDs := make([]string, 0, len(categoryNames))
    for _, name := range categoryNames {
        c, err := taxonomy.CreateCategory(ctx, name, "")
        if err != nil { c = must(taxonomy.GetCategoryByName(ctx, name)) }
        catIDs = append(catIDs, c.ID)
    }
    tagIDs := make([]string, 0, len(tagNames))
    for _, name := range tagNames {
        t, err := taxonomy.CreateTag(ctx, name, "")
        if err != nil { t = must(taxonomy.GetTagByName(ctx, name)) }
        tagIDs = append(tagIDs, t.ID)
    }

    // posts
    lat := make([]time.Duration, 0, POSTS)
    postIDs := make([]string, 0, POSTS)
    t0 := time.Now()
    for i := 0; i < POSTS; i++ {
        cat := catIDs[rng.Intn(len(catIDs))]
        loc := locations[rng.Intn(len(locations))]
        in := service.PostInput{
            Title:           fmt.Sprintf("Seed post %d", i),
            ContentMarkdown: fmt.Sprintf("# Seed %d\n\nSome **markdown** body for post %d.", i, i),
            IsPublished:     rng.Intn(10) > 0, // 约 10% 草稿
            CategoryID:      &cat,
            TagIDs:          []string{tagIDs[rng.Intn(len(tagIDs))], tagIDs[rng.Intn(len(tagIDs))]},
            Hashtags:        []string{"#" + tagNames[rng.Intn(len(tagNames))]},
            LocationTag:     &loc,
        }
        st := time.Now()
        p, err := posts.CreateOrUpdate(ctx, in, userIDs[rng.Intn(len(userIDs))])
        if err != nil { panic(err) }
        lat = append(lat, time.Since(st))
        if p.IsPublished { postIDs = append(postIDs, p.ID) }
    }
    elapsed := time.Since(t0)

    // engagement
    var nLikes, nComments, nFollows int
    for _, pid := range postIDs {
        for k := rng.Intn(5); k > 0; k-- {
            if ok, _ := likes.Like(ctx, pid, userIDs[rng.Intn(len(userIDs))]); ok { nLikes++ }
        }
        if rng.Intn(3) == 0 {
            if _, err := comments.Create(ctx, pid, userIDs[rng.Intn(len(userIDs))], "seeded comment", nil); err == nil { nComments++ }
        }
    }
    for i := 0; i < USERS*3; i++ {
        if ok, _ := rels.Follow(ctx, userIDs[rng.Intn(len(userIDs))], userIDs[rng.Intn(len(userIDs))]); ok { nFollows++ }
    }

    sort.Slice(lat, func(i, j int) bool { return lat[i] < lat[j] })
    fmt.Printf("posts=%d published=%d in %v (p50=%v p95=%v p99=%v)\n",
        POSTS, len(postIDs), elapsed, pct(lat, 0.50), pct(lat, 0.95), pct(lat, 0.99))
    fmt.Printf("likes=%d comments=%d follows=%d\n", nLikes, nComments, nFollows)
}
