package handler

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-engine/internal/service"
	"github.com/d60-Lab/blog-engine/pkg/response"
)

const maxImageSize = 10 << 20

// postRequest 同时支持 JSON 与 multipart/form-data（带 featured_image 文件）
type postRequest struct {
	Title            string   `json:"title" form:"title" binding:"max=255"`
	ContentMarkdown  string   `json:"content_markdown" form:"content_markdown"`
	Status           string   `json:"status" form:"status" binding:"omitempty,oneof=draft scheduled published"`
	IsPublished      bool     `json:"is_published" form:"is_published"`
	ScheduledFor     string   `json:"scheduled_for" form:"scheduled_for"` // RFC3339
	CategoryID       *string  `json:"category_id" form:"category_id"`
	TagIDs           []string `json:"tag_ids" form:"tag_ids"`
	Slug             string   `json:"slug" form:"slug"`
	MetaTitle        string   `json:"meta_title" form:"meta_title"`
	MetaDescription  string   `json:"meta_description" form:"meta_description"`
	Hashtags         []string `json:"hashtags" form:"hashtags"`
	LocationTag      *string  `json:"location_tag" form:"location_tag"`
	MentionedUserIDs []string `json:"mentioned_user_ids" form:"mentioned_user_ids"`
}

func (r *postRequest) toInput(id string) (service.PostInput, error) {
	in := service.PostInput{
		ID:               id,
		Title:            r.Title,
		ContentMarkdown:  r.ContentMarkdown,
		Status:           r.Status,
		IsPublished:      r.IsPublished,
		CategoryID:       r.CategoryID,
		TagIDs:           r.TagIDs,
		Slug:             r.Slug,
		MetaTitle:        r.MetaTitle,
		MetaDescription:  r.MetaDescription,
		Hashtags:         r.Hashtags,
		LocationTag:      r.LocationTag,
		MentionedUserIDs: r.MentionedUserIDs,
	}
	if s := strings.TrimSpace(r.ScheduledFor); s != "" {
		t, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return in, err
		}
		in.ScheduledFor = &t
	}
	return in, nil
}

func (h *Handler) savePost(c *gin.Context, id string) {
	var req postRequest
	if err := c.ShouldBind(&req); err != nil {
		response.BindError(c, err)
		return
	}
	in, err := req.toInput(id)
	if err != nil {
		response.BadRequest(c, "scheduled_for must be RFC3339")
		return
	}

	if fh, err := c.FormFile("featured_image"); err == nil {
		if fh.Size > maxImageSize {
			response.BadRequest(c, "featured_image too large")
			return
		}
		f, err := fh.Open()
		if err != nil {
			response.BadRequest(c, "unreadable featured_image")
			return
		}
		defer f.Close()
		in.Image = &service.ImageUpload{Filename: fh.Filename, Body: f}
	}

	post, err := h.postService.CreateOrUpdate(c.Request.Context(), in, currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	if id == "" {
		response.Created(c, post)
		return
	}
	response.Success(c, post)
}

// CreatePost 新建文章
// @Summary 新建文章
// @Tags 文章
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param request body postRequest true "文章内容"
// @Param featured_image formData file false "题图"
// @Success 201 {object} response.Response{data=service.PostDetail}
// @Failure 400 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /api/v1/posts [post]
func (h *Handler) CreatePost(c *gin.Context) { h.savePost(c, "") }

// UpdatePost 更新自己的文章
// @Summary 更新文章
// @Tags 文章
// @Accept json,mpfd
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Param request body postRequest true "文章内容"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [put]
func (h *Handler) UpdatePost(c *gin.Context) { h.savePost(c, c.Param("id")) }

// DeletePost 删除自己的文章
// @Summary 删除文章
// @Tags 文章
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	ok, err := h.postService.Delete(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	if !ok {
		response.NotFound(c, notFoundMsg)
		return
	}
	response.NoContent(c)
}

// GetPost 文章详情
// @Summary 文章详情
// @Tags 文章
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=service.PostDetail}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	post, err := h.postService.Get(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, post)
}

// ListUserPosts 某作者已发布的文章
// @Summary 作者文章列表
// @Tags 文章
// @Produce json
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=[]service.PostDetail}
// @Router /api/v1/users/{user_id}/posts [get]
func (h *Handler) ListUserPosts(c *gin.Context) {
	list, err := h.postService.ListByUser(c.Request.Context(), c.Param("user_id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// MyPosts 当前用户的全部文章，按状态分组
// @Summary 我的文章
// @Tags 文章
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=map[string][]service.PostDetail}
// @Router /api/v1/me/posts [get]
func (h *Handler) MyPosts(c *gin.Context) {
	groups, err := h.postService.MyPosts(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, groups)
}

// ListCategoryPosts 分类下的文章
// @Summary 分类文章
// @Tags 文章
// @Produce json
// @Param id path string true "分类ID"
// @Success 200 {object} response.Response{data=[]service.PostDetail}
// @Router /api/v1/categories/{id}/posts [get]
func (h *Handler) ListCategoryPosts(c *gin.Context) {
	list, err := h.postService.ListByCategory(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// ListTagPosts 标签下的文章
// @Summary 标签文章
// @Tags 文章
// @Produce json
// @Param id path string true "标签ID"
// @Success 200 {object} response.Response{data=[]service.PostDetail}
// @Router /api/v1/tags/{id}/posts [get]
func (h *Handler) ListTagPosts(c *gin.Context) {
	list, err := h.postService.ListByTag(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// PostInsights 文章互动明细；登录用户访问时先记一次浏览
// @Summary 文章互动数据
// @Tags 文章
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=service.PostInsights}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/insights [get]
func (h *Handler) PostInsights(c *gin.Context) {
	ctx := c.Request.Context()
	postID, viewer := c.Param("id"), currentUser(c)
	// 对调用者不可见的文章一律 404
	if _, err := h.postService.Get(ctx, postID, viewer); err != nil {
		fail(c, err)
		return
	}
	h.engagementService.RecordView(ctx, postID, viewer)
	insights, err := h.engagementService.Insights(ctx, postID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, insights)
}
