package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-engine/internal/api/middleware"
	"github.com/d60-Lab/blog-engine/internal/service"
	"github.com/d60-Lab/blog-engine/pkg/response"
)

// Services handler 依赖的全部业务服务
type Services struct {
	Posts         service.PostService
	Discovery     service.DiscoveryService
	Engagement    service.EngagementService
	Likes         service.LikeService
	Comments      service.CommentService
	Saved         service.SavedPostService
	Relations     service.RelationshipService
	Notifications service.NotificationService
	Taxonomy      service.TaxonomyService
}

// Handler HTTP 入口，只做绑定和错误映射
type Handler struct {
	postService         service.PostService
	discoveryService    service.DiscoveryService
	engagementService   service.EngagementService
	likeService         service.LikeService
	commentService      service.CommentService
	savedService        service.SavedPostService
	relService          service.RelationshipService
	notificationService service.NotificationService
	taxonomyService     service.TaxonomyService
}

func New(s Services) *Handler {
	return &Handler{
		postService:         s.Posts,
		discoveryService:    s.Discovery,
		engagementService:   s.Engagement,
		likeService:         s.Likes,
		commentService:      s.Comments,
		savedService:        s.Saved,
		relService:          s.Relations,
		notificationService: s.Notifications,
		taxonomyService:     s.Taxonomy,
	}
}

const notFoundMsg = "resource not found"

// fail 统一错误映射：校验错误 400，不存在/无权限 404，其余 500
func fail(c *gin.Context, err error) {
	switch {
	case service.IsValidation(err):
		response.BadRequest(c, err.Error())
	case service.IsNotFound(err):
		response.NotFound(c, notFoundMsg)
	default:
		response.InternalError(c, err)
	}
}

func queryInt(c *gin.Context, key string, def int) int {
	v, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return def
	}
	return v
}

func currentUser(c *gin.Context) string { return middleware.UserID(c) }
