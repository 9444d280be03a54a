package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-engine/internal/service"
	"github.com/d60-Lab/blog-engine/pkg/response"
)

// ListPublished 全部已发布文章
// @Summary 已发布文章
// @Tags 发现
// @Produce json
// @Success 200 {object} response.Response{data=[]service.PostDetail}
// @Router /api/v1/posts [get]
func (h *Handler) ListPublished(c *gin.Context) {
	list, err := h.discoveryService.AllPublished(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// Feed 分页时间线
// @Summary 首页时间线
// @Tags 发现
// @Produce json
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/feed [get]
func (h *Handler) Feed(c *gin.Context) {
	page := queryInt(c, "page", 1)
	list, err := h.discoveryService.Feed(c.Request.Context(), page, currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "list": list})
}

// Search 按标题搜索
// @Summary 搜索文章
// @Tags 发现
// @Produce json
// @Param q query string true "关键词"
// @Param page query int false "页码" default(1)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Failure 400 {object} response.Response
// @Router /api/v1/search [get]
func (h *Handler) Search(c *gin.Context) {
	page := queryInt(c, "page", 1)
	list, err := h.discoveryService.Search(c.Request.Context(), c.Query("q"), page, currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"page": page, "list": list})
}

// Archive 按月归档
// @Summary 归档
// @Tags 发现
// @Produce json
// @Success 200 {object} response.Response{data=[]service.ArchiveGroup}
// @Router /api/v1/archive [get]
func (h *Handler) Archive(c *gin.Context) {
	groups, err := h.discoveryService.Archive(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, groups)
}

// Related 相关文章
// @Summary 相关文章
// @Tags 发现
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=[]service.PostDetail}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/related [get]
func (h *Handler) Related(c *gin.Context) {
	list, err := h.discoveryService.Related(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// Filter 多条件过滤，各条件取交集；逗号分隔多个值
// @Summary 多条件过滤
// @Tags 发现
// @Produce json
// @Param authors query string false "作者用户名"
// @Param categories query string false "分类名"
// @Param tags query string false "标签名"
// @Param locations query string false "地点关键字"
// @Param dates query string false "日期 2006-01-02"
// @Success 200 {object} response.Response{data=[]service.PostDetail}
// @Router /api/v1/filter [get]
func (h *Handler) Filter(c *gin.Context) {
	criteria := service.FilterCriteria{
		Authors:    service.SplitList(c.Query("authors")),
		Categories: service.SplitList(c.Query("categories")),
		Tags:       service.SplitList(c.Query("tags")),
		Locations:  service.SplitList(c.Query("locations")),
		Dates:      service.SplitList(c.Query("dates")),
	}
	list, err := h.discoveryService.Filter(c.Request.Context(), criteria, currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// FilterOptions 过滤面板可选值
// @Summary 过滤可选值
// @Tags 发现
// @Produce json
// @Success 200 {object} response.Response{data=service.FilterOptions}
// @Router /api/v1/filter/options [get]
func (h *Handler) FilterOptions(c *gin.Context) {
	opts, err := h.discoveryService.FilterOptions(c.Request.Context())
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, opts)
}
