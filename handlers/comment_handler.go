package handlers

import (
	"strconv"

	"yamdb-api/helper"
	"yamdb-api/middleware"
	"yamdb-api/models"
	"yamdb-api/permissions"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService services.CommentService
	Helper         *helper.HTTPHelper
}

func NewCommentHandler(commentService services.CommentService) *CommentHandler {
	return &CommentHandler{commentService: commentService, Helper: &helper.HTTPHelper{}}
}

func (h *CommentHandler) GetComments(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindComment, nil) {
		return
	}

	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	comments, err := h.commentService.GetComments(titleID, reviewID)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comments)
}

func (h *CommentHandler) GetComment(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindComment, nil) {
		return
	}

	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id")
	if !ok {
		return
	}

	comment, err := h.commentService.GetComment(titleID, reviewID, commentID)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", comment)
}

func (h *CommentHandler) CreateComment(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindComment, nil) {
		return
	}

	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req models.CreateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.CreateComment(titleID, reviewID, req, middleware.CurrentUser(c))
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment created", comment)
}

func (h *CommentHandler) UpdateComment(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id")
	if !ok {
		return
	}

	var req models.UpdateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	comment, err := h.commentService.UpdateComment(titleID, reviewID, commentID, req, middleware.CurrentUser(c))
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment updated", comment)
}

func (h *CommentHandler) DeleteComment(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}
	commentID, ok := h.pathID(c, "comment_id")
	if !ok {
		return
	}

	if err := h.commentService.DeleteComment(titleID, reviewID, commentID, middleware.CurrentUser(c)); err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Comment deleted", h.Helper.EmptyJsonMap())
}

func (h *CommentHandler) pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid "+name, h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}

func (h *CommentHandler) pathIDs(c *gin.Context) (uint, uint, bool) {
	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return 0, 0, false
	}
	reviewID, ok := h.pathID(c, "review_id")
	if !ok {
		return 0, 0, false
	}
	return titleID, reviewID, true
}
