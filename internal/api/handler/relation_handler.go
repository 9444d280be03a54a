package handler

import (
    "github.com/gin-gonic/gin"

    "github.com/d60-Lab/blog-engine/internal/service"
    "github.com/d60-Lab/blog-engine/pkg/response"
)

type followRequest struct {
    ToUserID string `json:"to_user_id" binding:"required"`
}

func (h *Handler) bindFollow(c *gin.Context) (string, bool) {
    var req followRequest
    if err := c.ShouldBindJSON(&req); err != nil {
        response.BindError(c, err)
        return "", false
    }
    if req.ToUserID == currentUser(c) {
        response.BadRequest(c, service.ErrFollowSelf.Error())
        return "", false
    }
    return req.ToUserID, true
}

// Follow 关注用户
// @Summary 关注用户
// @Tags 关系链
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body followRequest true "关注信息"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/relations/follow [post]
func (h *Handler) Follow(c *gin.Context) {
    to, ok := h.bindFollow(c)
    if !ok { return }
    created, err := h.relService.Follow(c.Request.Context(), currentUser(c), to)
    if err != nil {
        fail(c, err)
        return
    }
    response.Success(c, gin.H{"following": true, "created": created})
}

// Unfollow 取消关注
// @Summary 取消关注
// @Tags 关系链
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body followRequest true "取消关注信息"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 400 {object} response.Response
// @Failure 500 {object} response.Response
// @Router /api/v1/relations/unfollow [post]
func (h *Handler) Unfollow(c *gin.Context) {
    to, ok := h.bindFollow(c)
    if !ok { return }
    removed, err := h.relService.Unfollow(c.Request.Context(), currentUser(c), to)
    if err != nil {
        fail(c, err)
        return
    }
    response.Success(c, gin.H{"following": false, "removed": removed})
}

// ListFollowing 查询某用户关注的人
// @Summary 查询关注列表
// @Tags 关系链
// @Param user_id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/{user_id}/following [get]
func (h *Handler) ListFollowing(c *gin.Context) {
    userID := c.Param("user_id")
    page, pageSize := queryInt(c, "page", 1), queryInt(c, "page_size", 10)
    list, err := h.relService.ListFollowing(c.Request.Context(), userID, page, pageSize)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// ListFollowers 查询某用户的粉丝
// @Summary 查询粉丝列表
// @Tags 关系链
// @Param user_id path string true "用户ID"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页数量" default(10)
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/{user_id}/followers [get]
func (h *Handler) ListFollowers(c *gin.Context) {
    userID := c.Param("user_id")
    page, pageSize := queryInt(c, "page", 1), queryInt(c, "page_size", 10)
    list, err := h.relService.ListFollowers(c.Request.Context(), userID, page, pageSize)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    response.Success(c, gin.H{"page": page, "page_size": pageSize, "list": list})
}

// RelationStats 粉丝数、关注数，登录时附带当前用户是否已关注
// @Summary 关系统计
// @Tags 关系链
// @Param user_id path string true "用户ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/relations/{user_id}/stats [get]
func (h *Handler) RelationStats(c *gin.Context) {
    ctx := c.Request.Context()
    userID := c.Param("user_id")
    followers, following, err := h.relService.Counts(ctx, userID)
    if err != nil {
        response.InternalError(c, err)
        return
    }
    data := gin.H{"followers": followers, "following": following}
    if me := currentUser(c); me != "" && me != userID {
        yes, err := h.relService.IsFollowing(ctx, me, userID)
        if err != nil {
            response.InternalError(c, err)
            return
        }
        data["is_following"] = yes
    }
    response.Success(c, data)
}
