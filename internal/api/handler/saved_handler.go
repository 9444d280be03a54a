package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-engine/pkg/response"
)

type saveRequest struct {
	PostID       string  `json:"post_id" binding:"required"`
	CollectionID *string `json:"collection_id"`
}

// SavePost 收藏文章，已收藏时只移动收藏夹
// @Summary 收藏文章
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body saveRequest true "收藏"
// @Success 200 {object} response.Response{data=model.SavedPost}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/saved [post]
func (h *Handler) SavePost(c *gin.Context) {
	var req saveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	sp, err := h.savedService.Save(c.Request.Context(), req.PostID, currentUser(c), req.CollectionID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, sp)
}

// RemoveSaved 取消收藏
// @Summary 取消收藏
// @Tags 收藏
// @Security BearerAuth
// @Param post_id path string true "文章ID"
// @Success 204
// @Router /api/v1/saved/{post_id} [delete]
func (h *Handler) RemoveSaved(c *gin.Context) {
	if err := h.savedService.Remove(c.Request.Context(), c.Param("post_id"), currentUser(c)); err != nil {
		fail(c, err)
		return
	}
	response.NoContent(c)
}

// ListSaved 我的收藏，可按收藏夹过滤
// @Summary 收藏列表
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Param collection_id query string false "收藏夹ID"
// @Success 200 {object} response.Response{data=[]service.PostDetail}
// @Router /api/v1/saved [get]
func (h *Handler) ListSaved(c *gin.Context) {
	var collectionID *string
	if v := c.Query("collection_id"); v != "" {
		collectionID = &v
	}
	list, err := h.savedService.List(c.Request.Context(), currentUser(c), collectionID)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

type collectionRequest struct {
	Name string `json:"name" binding:"required,max=128"`
}

// CreateCollection 新建收藏夹
// @Summary 新建收藏夹
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body collectionRequest true "收藏夹"
// @Success 201 {object} response.Response{data=model.Collection}
// @Router /api/v1/collections [post]
func (h *Handler) CreateCollection(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	col, err := h.savedService.CreateCollection(c.Request.Context(), currentUser(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, col)
}

// ListCollections 我的收藏夹
// @Summary 收藏夹列表
// @Tags 收藏
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Collection}
// @Router /api/v1/collections [get]
func (h *Handler) ListCollections(c *gin.Context) {
	list, err := h.savedService.ListCollections(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// RenameCollection 重命名收藏夹
// @Summary 重命名收藏夹
// @Tags 收藏
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "收藏夹ID"
// @Param request body collectionRequest true "收藏夹"
// @Success 200 {object} response.Response{data=model.Collection}
// @Failure 404 {object} response.Response
// @Router /api/v1/collections/{id} [put]
func (h *Handler) RenameCollection(c *gin.Context) {
	var req collectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	col, err := h.savedService.RenameCollection(c.Request.Context(), c.Param("id"), currentUser(c), req.Name)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, col)
}

// DeleteCollection 删除收藏夹，收藏本身保留
// @Summary 删除收藏夹
// @Tags 收藏
// @Security BearerAuth
// @Param id path string true "收藏夹ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/collections/{id} [delete]
func (h *Handler) DeleteCollection(c *gin.Context) {
	ok, err := h.savedService.DeleteCollection(c.Request.Context(), c.Param("id"), currentUser(c))
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
