package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"

	"github.com/d60-Lab/blog-engine/config"
	"github.com/d60-Lab/blog-engine/internal/api"
	"github.com/d60-Lab/blog-engine/internal/api/handler"
	"github.com/d60-Lab/blog-engine/internal/directory"
	"github.com/d60-Lab/blog-engine/internal/repository"
	"github.com/d60-Lab/blog-engine/internal/service"
	"github.com/d60-Lab/blog-engine/pkg/database"
	"github.com/d60-Lab/blog-engine/pkg/logger"
	"github.com/d60-Lab/blog-engine/pkg/markdown"
	"github.com/d60-Lab/blog-engine/pkg/storage"
	"github.com/d60-Lab/blog-engine/pkg/tracing"
)

// @title Blog Engine API
// @version 1.0
// @description 多作者博客：文章发布、互动与通知
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}
	if err := logger.Init(cfg.Log.Level, cfg.Log.Format); err != nil {
		panic(err)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("server exited", zap.Error(err))
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(ctx, cfg.Tracing)
	if err != nil {
		return err
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{Dsn: cfg.Sentry.DSN, Environment: cfg.Sentry.Environment}); err != nil {
			return err
		}
		defer sentry.Flush(2 * time.Second)
	}

	db, err := database.InitDB(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = database.Close(db) }()

	// redis 不可用时退化为直连数据库
	rdb, err := database.InitRedis(ctx, cfg)
	if err != nil {
		logger.Warn("redis unavailable, profile cache disabled", zap.Error(err))
	} else {
		defer rdb.Close()
	}

	store, err := storage.NewLocal(cfg.Storage.Dir, cfg.Storage.BaseURL)
	if err != nil {
		return err
	}

	postRepo := repository.NewPostRepository(db)
	tagRepo := repository.NewTagRepository(db)
	catRepo := repository.NewCategoryRepository(db)
	likeRepo := repository.NewLikeRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	savedRepo := repository.NewSavedPostRepository(db)

	profiles := directory.New(repository.NewProfileRepository(db), rdb, cfg.Redis.ProfileTTL)
	notifications := service.NewNotificationService(repository.NewNotificationRepository(db))
	notifier := service.NewNotifier(notifications, cfg.Notifications)
	stopNotifier := notifier.Start()

	postTags := service.NewPostTagService(repository.NewPostTagRepository(db))
	engagement := service.NewEngagementService(postRepo, likeRepo, repository.NewViewRepository(db), commentRepo, savedRepo, postTags, profiles)

	h := handler.New(handler.Services{
		Posts:         service.NewPostService(postRepo, tagRepo, catRepo, postTags, engagement, profiles, markdown.NewRenderer(), store, notifier),
		Discovery:     service.NewDiscoveryService(postRepo, tagRepo, catRepo, postTags, engagement, profiles, cfg.Feed.PageSize),
		Engagement:    engagement,
		Likes:         service.NewLikeService(likeRepo, postRepo, engagement, notifier),
		Comments:      service.NewCommentService(commentRepo, postRepo, engagement, notifier),
		Saved:         service.NewSavedPostService(savedRepo, repository.NewCollectionRepository(db), postRepo, engagement, notifier),
		Relations:     service.NewRelationshipService(repository.NewFollowRepository(db), engagement, notifier),
		Notifications: notifications,
		Taxonomy:      service.NewTaxonomyService(tagRepo, catRepo),
	})

	srv := &http.Server{
		Addr:              cfg.Server.Address(),
		Handler:           api.NewRouter(cfg, h),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", zap.Error(err))
	}
	// 请求全部结束后再排空通知队列
	if err := stopNotifier(shutdownCtx); err != nil {
		logger.Warn("notifier drain incomplete", zap.Int("pending", notifier.QueueLen()), zap.Error(err))
	}
	return nil
}
