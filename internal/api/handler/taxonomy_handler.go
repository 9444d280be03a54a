package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-engine/pkg/response"
)

type taxonomyRequest struct {
	Name        string `json:"name" binding:"required,max=64"`
	Description string `json:"description" binding:"max=500"`
}

// CreateTag 新建标签
// @Summary 新建标签
// @Tags 分类标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body taxonomyRequest true "标签"
// @Success 201 {object} response.Response{data=model.Tag}
// @Failure 400 {object} response.Response
// @Router /api/v1/tags [post]
func (h *Handler) CreateTag(c *gin.Context) {
	var req taxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	tag, err := h.taxonomyService.CreateTag(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, tag)
}

// ListTags 标签列表；带 name 参数时按名字查单个
// @Summary 标签列表
// @Tags 分类标签
// @Produce json
// @Param name query string false "标签名"
// @Success 200 {object} response.Response{data=[]model.Tag}
// @Router /api/v1/tags [get]
func (h *Handler) ListTags(c *gin.Context) {
	ctx := c.Request.Context()
	if name := c.Query("name"); name != "" {
		tag, err := h.taxonomyService.GetTagByName(ctx, name)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, tag)
		return
	}
	list, err := h.taxonomyService.ListTags(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// GetTag 标签详情
// @Summary 标签详情
// @Tags 分类标签
// @Produce json
// @Param id path string true "标签ID"
// @Success 200 {object} response.Response{data=model.Tag}
// @Failure 404 {object} response.Response
// @Router /api/v1/tags/{id} [get]
func (h *Handler) GetTag(c *gin.Context) {
	tag, err := h.taxonomyService.GetTag(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, tag)
}

// DeleteTag 删除标签
// @Summary 删除标签
// @Tags 分类标签
// @Security BearerAuth
// @Param id path string true "标签ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/tags/{id} [delete]
func (h *Handler) DeleteTag(c *gin.Context) {
	ok, err := h.taxonomyService.DeleteTag(c.Request.Context(), c.Param("id"))
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

// CreateCategory 新建分类
// @Summary 新建分类
// @Tags 分类标签
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body taxonomyRequest true "分类"
// @Success 201 {object} response.Response{data=model.Category}
// @Failure 400 {object} response.Response
// @Router /api/v1/categories [post]
func (h *Handler) CreateCategory(c *gin.Context) {
	var req taxonomyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	cat, err := h.taxonomyService.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, cat)
}

// ListCategories 分类列表；带 name 参数时按名字查单个
// @Summary 分类列表
// @Tags 分类标签
// @Produce json
// @Param name query string false "分类名"
// @Success 200 {object} response.Response{data=[]model.Category}
// @Router /api/v1/categories [get]
func (h *Handler) ListCategories(c *gin.Context) {
	ctx := c.Request.Context()
	if name := c.Query("name"); name != "" {
		cat, err := h.taxonomyService.GetCategoryByName(ctx, name)
		if err != nil {
			fail(c, err)
			return
		}
		response.Success(c, cat)
		return
	}
	list, err := h.taxonomyService.ListCategories(ctx)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// GetCategory 分类详情
// @Summary 分类详情
// @Tags 分类标签
// @Produce json
// @Param id path string true "分类ID"
// @Success 200 {object} response.Response{data=model.Category}
// @Failure 404 {object} response.Response
// @Router /api/v1/categories/{id} [get]
func (h *Handler) GetCategory(c *gin.Context) {
	cat, err := h.taxonomyService.GetCategory(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, cat)
}

// DeleteCategory 删除分类
// @Summary 删除分类
// @Tags 分类标签
// @Security BearerAuth
// @Param id path string true "分类ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/categories/{id} [delete]
func (h *Handler) DeleteCategory(c *gin.Context) {
	ok, err := h.taxonomyService.DeleteCategory(c.Request.Context(), c.Param("id"))
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
