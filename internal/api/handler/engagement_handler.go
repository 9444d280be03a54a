package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/d60-Lab/blog-engine/pkg/response"
)

// LikePost 点赞
// @Summary 点赞文章
// @Tags 互动
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/like [post]
func (h *Handler) LikePost(c *gin.Context) {
	created, err := h.likeService.Like(c.Request.Context(), c.Param("id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"liked": true, "created": created})
}

// UnlikePost 取消点赞
// @Summary 取消点赞
// @Tags 互动
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response
// @Router /api/v1/posts/{id}/like [delete]
func (h *Handler) UnlikePost(c *gin.Context) {
	if err := h.likeService.Unlike(c.Request.Context(), c.Param("id"), currentUser(c)); err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"liked": false})
}

// PostLikes 点赞数、点赞人以及当前用户是否点过赞
// @Summary 点赞信息
// @Tags 互动
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=map[string]interface{}}
// @Router /api/v1/posts/{id}/likes [get]
func (h *Handler) PostLikes(c *gin.Context) {
	ctx := c.Request.Context()
	postID := c.Param("id")
	count, err := h.likeService.Count(ctx, postID)
	if err != nil {
		fail(c, err)
		return
	}
	likers, err := h.likeService.Likers(ctx, postID)
	if err != nil {
		fail(c, err)
		return
	}
	liked, err := h.likeService.Status(ctx, postID, currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"count": count, "liked_by_me": liked, "likers": likers})
}

type commentRequest struct {
	Content          string   `json:"content" binding:"required,max=5000"`
	MentionedUserIDs []string `json:"mentioned_user_ids"`
}

// CreateComment 发表评论
// @Summary 发表评论
// @Tags 互动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "文章ID"
// @Param request body commentRequest true "评论"
// @Success 201 {object} response.Response{data=service.CommentDetail}
// @Failure 400 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /api/v1/posts/{id}/comments [post]
func (h *Handler) CreateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	cm, err := h.commentService.Create(c.Request.Context(), c.Param("id"), currentUser(c), req.Content, req.MentionedUserIDs)
	if err != nil {
		fail(c, err)
		return
	}
	response.Created(c, cm)
}

// ListComments 评论列表（时间正序）
// @Summary 评论列表
// @Tags 互动
// @Produce json
// @Param id path string true "文章ID"
// @Success 200 {object} response.Response{data=[]service.CommentDetail}
// @Router /api/v1/posts/{id}/comments [get]
func (h *Handler) ListComments(c *gin.Context) {
	list, err := h.commentService.ListByPost(c.Request.Context(), c.Param("id"))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, list)
}

// UpdateComment 修改自己的评论
// @Summary 修改评论
// @Tags 互动
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param comment_id path string true "评论ID"
// @Param request body commentRequest true "评论"
// @Success 200 {object} response.Response{data=service.CommentDetail}
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{comment_id} [put]
func (h *Handler) UpdateComment(c *gin.Context) {
	var req commentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BindError(c, err)
		return
	}
	cm, err := h.commentService.Update(c.Request.Context(), c.Param("comment_id"), currentUser(c), req.Content)
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, cm)
}

// DeleteComment 删除自己的评论
// @Summary 删除评论
// @Tags 互动
// @Security BearerAuth
// @Param comment_id path string true "评论ID"
// @Success 204
// @Failure 404 {object} response.Response
// @Router /api/v1/comments/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	ok, err := h.commentService.Delete(c.Request.Context(), c.Param("comment_id"), currentUser(c))
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

// LikeComment 评论点赞
// @Summary 评论点赞
// @Tags 互动
// @Security BearerAuth
// @Param comment_id path string true "评论ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/comments/{comment_id}/like [post]
func (h *Handler) LikeComment(c *gin.Context) {
	added, err := h.commentService.Like(c.Request.Context(), c.Param("comment_id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"created": added})
}

// DislikeComment 取消评论点赞
// @Summary 取消评论点赞
// @Tags 互动
// @Security BearerAuth
// @Param comment_id path string true "评论ID"
// @Success 200 {object} response.Response{data=map[string]bool}
// @Router /api/v1/comments/{comment_id}/like [delete]
func (h *Handler) DislikeComment(c *gin.Context) {
	removed, err := h.commentService.Dislike(c.Request.Context(), c.Param("comment_id"), currentUser(c))
	if err != nil {
		fail(c, err)
		return
	}
	response.Success(c, gin.H{"removed": removed})
}
