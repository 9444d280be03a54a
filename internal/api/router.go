package api

import (
	"net/http"
	"strings"

	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/d60-Lab/blog-engine/config"
	_ "github.com/d60-Lab/blog-engine/docs"
	"github.com/d60-Lab/blog-engine/internal/api/handler"
	"github.com/d60-Lab/blog-engine/internal/api/middleware"
)

// NewRouter 组装中间件与全部路由
func NewRouter(cfg *config.Config, h *handler.Handler) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())
	if cfg.Sentry.DSN != "" {
		r.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	if cfg.Tracing.Enabled {
		r.Use(otelgin.Middleware(cfg.Tracing.ServiceName))
	}
	r.Use(middleware.AccessLog())
	r.Use(gzip.Gzip(gzip.DefaultCompression))
	r.Use(middleware.NewRateLimiter(cfg.RateLimit.RPS, cfg.RateLimit.Burst).Middleware())

	r.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	if cfg.Server.Mode != gin.ReleaseMode {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}
	// 本地存储的题图
	if strings.HasPrefix(cfg.Storage.BaseURL, "/") {
		r.Static(cfg.Storage.BaseURL, cfg.Storage.Dir)
	}

	auth := middleware.Auth(cfg.JWT.Secret)
	v1 := r.Group("/api/v1", middleware.OptionalAuth(cfg.JWT.Secret))
	{
		v1.GET("/posts", h.ListPublished)
		v1.POST("/posts", auth, h.CreatePost)
		v1.GET("/posts/:id", h.GetPost)
		v1.PUT("/posts/:id", auth, h.UpdatePost)
		v1.DELETE("/posts/:id", auth, h.DeletePost)
		v1.GET("/posts/:id/related", h.Related)
		v1.GET("/posts/:id/insights", auth, h.PostInsights)

		v1.GET("/posts/:id/likes", h.PostLikes)
		v1.POST("/posts/:id/like", auth, h.LikePost)
		v1.DELETE("/posts/:id/like", auth, h.UnlikePost)

		v1.GET("/posts/:id/comments", h.ListComments)
		v1.POST("/posts/:id/comments", auth, h.CreateComment)
		v1.PUT("/comments/:comment_id", auth, h.UpdateComment)
		v1.DELETE("/comments/:comment_id", auth, h.DeleteComment)
		v1.POST("/comments/:comment_id/like", auth, h.LikeComment)
		v1.DELETE("/comments/:comment_id/like", auth, h.DislikeComment)

		v1.GET("/feed", h.Feed)
		v1.GET("/search", h.Search)
		v1.GET("/archive", h.Archive)
		v1.GET("/filter", h.Filter)
		v1.GET("/filter/options", h.FilterOptions)

		v1.GET("/users/:user_id/posts", h.ListUserPosts)
		v1.GET("/me/posts", auth, h.MyPosts)

		v1.GET("/tags", h.ListTags)
		v1.POST("/tags", auth, h.CreateTag)
		v1.GET("/tags/:id", h.GetTag)
		v1.DELETE("/tags/:id", auth, h.DeleteTag)
		v1.GET("/tags/:id/posts", h.ListTagPosts)
		v1.GET("/categories", h.ListCategories)
		v1.POST("/categories", auth, h.CreateCategory)
		v1.GET("/categories/:id", h.GetCategory)
		v1.DELETE("/categories/:id", auth, h.DeleteCategory)
		v1.GET("/categories/:id/posts", h.ListCategoryPosts)

		saved := v1.Group("", auth)
		saved.GET("/saved", h.ListSaved)
		saved.POST("/saved", h.SavePost)
		saved.DELETE("/saved/:post_id", h.RemoveSaved)
		saved.GET("/collections", h.ListCollections)
		saved.POST("/collections", h.CreateCollection)
		saved.PUT("/collections/:id", h.RenameCollection)
		saved.DELETE("/collections/:id", h.DeleteCollection)

		rel := v1.Group("/relations")
		rel.POST("/follow", auth, h.Follow)
		rel.POST("/unfollow", auth, h.Unfollow)
		rel.GET("/:user_id/following", h.ListFollowing)
		rel.GET("/:user_id/followers", h.ListFollowers)
		rel.GET("/:user_id/stats", h.RelationStats)

		notif := v1.Group("/notifications", auth)
		notif.GET("", h.ListNotifications)
		notif.POST("", h.CreateNotification)
		notif.GET("/:id", h.GetNotification)
		notif.PUT("/:id/read", h.MarkNotificationRead)
		notif.DELETE("/:id", h.DeleteNotification)
	}
	return r
}
