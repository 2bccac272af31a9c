package handlers

import (
	"yamdb-api/helper"
	"yamdb-api/models"
	"yamdb-api/permissions"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

type CategoryHandler struct {
	categoryService services.CategoryService
	Helper          *helper.HTTPHelper
}

func NewCategoryHandler(categoryService services.CategoryService) *CategoryHandler {
	return &CategoryHandler{categoryService: categoryService, Helper: &helper.HTTPHelper{}}
}

func (h *CategoryHandler) GetCategories(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindCategory, nil) {
		return
	}

	var params models.NameSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	categories, err := h.categoryService.GetCategories(params.Search)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", categories)
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindCategory, nil) {
		return
	}

	var req models.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	category, err := h.categoryService.CreateCategory(req)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Category created", category)
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindCategory, nil) {
		return
	}

	if err := h.categoryService.DeleteCategory(c.Param("slug")); err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Category deleted", h.Helper.EmptyJsonMap())
}
