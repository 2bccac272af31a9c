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

// ReviewHandler authorizes GET and POST up front; PATCH and DELETE are
// ownership-aware, so the service runs the policy check after loading
// the review's author.
type ReviewHandler struct {
	reviewService services.ReviewService
	Helper        *helper.HTTPHelper
}

func NewReviewHandler(reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{reviewService: reviewService, Helper: &helper.HTTPHelper{}}
}

func (h *ReviewHandler) GetReviews(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindReview, nil) {
		return
	}

	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}

	reviews, err := h.reviewService.GetReviews(titleID)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", reviews)
}

func (h *ReviewHandler) GetReview(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindReview, nil) {
		return
	}

	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	review, err := h.reviewService.GetReview(titleID, reviewID)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", review)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindReview, nil) {
		return
	}

	titleID, ok := h.pathID(c, "title_id")
	if !ok {
		return
	}

	var req models.CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	review, err := h.reviewService.CreateReview(titleID, req, middleware.CurrentUser(c))
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Review created", review)
}

func (h *ReviewHandler) UpdateReview(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	var req models.UpdateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	review, err := h.reviewService.UpdateReview(titleID, reviewID, req, middleware.CurrentUser(c))
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Review updated", review)
}

func (h *ReviewHandler) DeleteReview(c *gin.Context) {
	titleID, reviewID, ok := h.pathIDs(c)
	if !ok {
		return
	}

	if err := h.reviewService.DeleteReview(titleID, reviewID, middleware.CurrentUser(c)); err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Review deleted", h.Helper.EmptyJsonMap())
}

func (h *ReviewHandler) pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid "+name, h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}

func (h *ReviewHandler) pathIDs(c *gin.Context) (uint, uint, bool) {
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
