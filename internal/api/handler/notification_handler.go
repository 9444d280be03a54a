package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-engine/internal/model"
	"github.com/d60-Lab/blog-engine/pkg/response"
)

type notificationRequest struct {
	Type          string  `json:"type" binding:"required,oneof=comment like follow unfollow mention save"`
	Content       string  `json:"content" binding:"max=500"`
	TargetUserID  string  `json:"target_user_id" binding:"required"`
	ReferenceID   *string `json:"reference_id"`
	ReferenceType string  `json:"reference_type" binding:"omitempty,oneof=post comment user"`
}

// CreateNotification 直接写一条通知
// @Summary 创建通知
// @Tags 通知
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body notificationRequest true "通知"
// @Success 201 {object} response.Response{data=model.Notification}
// @Failure 400 {object} response.Response
// @Router /api/v1/notifications [post]
func (h *Handler) CreateNotification(c *gin.Context) {
	var req notificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	n, err := h.notificationService.Emit(c.Request.Context(), &model.Notification{
		Type:          req.Type,
		Content:       req.Content,
		TargetUserID:  req.TargetUserID,
		ReferenceID:   req.ReferenceID,
		ReferenceType: req.ReferenceType,
	})
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, n)
}

// ListNotifications 未读通知，新的在前
// @Summary 未读通知
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Success 200 {object} response.Response{data=[]model.Notification}
// @Router /api/v1/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	list, err := h.notificationService.ListUnread(c.Request.Context(), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// GetNotification 单条通知
// @Summary 通知详情
// @Tags 通知
// @Produce json
// @Security BearerAuth
// @Param id path string true "通知ID"
// @Success 200 {object} response.Response{data=model.Notification}
// @Failure 404 {object} response.Response
// @Router /api/v1/notifications/{id} [get]
func (h *Handler) GetNotification(c *gin.Context) {
	n, err := h.notificationService.Get(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, n)
}

// MarkNotificationRead 标记已读
// @Summary 标记已读
// @Tags 通知
// @Security BearerAuth
// @Param id path string true "通知ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/notifications/{id}/read [put]
func (h *Handler) MarkNotificationRead(c *gin.Context) {
	ok, err := h.notificationService.MarkRead(c.Request.Context(), c.Param("id"), currentUser(c))
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

// DeleteNotification 删除通知
// @Summary 删除通知
// @Tags 通知
// @Security BearerAuth
// @Param id path string true "通知ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/notifications/{id} [delete]
func (h *Handler) DeleteNotification(c *gin.Context) {
	ok, err := h.notificationService.Delete(c.Request.Context(), c.Param("id"), currentUser(c))
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
