package handlers

import (
	"yamdb-api/helper"
	"yamdb-api/models"
	"yamdb-api/permissions"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

type GenreHandler struct {
	genreService services.GenreService
	Helper       *helper.HTTPHelper
}

func NewGenreHandler(genreService services.GenreService) *GenreHandler {
	return &GenreHandler{genreService: genreService, Helper: &helper.HTTPHelper{}}
}

func (h *GenreHandler) GetGenres(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindGenre, nil) {
		return
	}

	var params models.NameSearchParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	genres, err := h.genreService.GetGenres(params.Search)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", genres)
}

func (h *GenreHandler) CreateGenre(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindGenre, nil) {
		return
	}

	var req models.CreateGenreRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	genre, err := h.genreService.CreateGenre(req)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Genre created", genre)
}

func (h *GenreHandler) DeleteGenre(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindGenre, nil) {
		return
	}

	if err := h.genreService.DeleteGenre(c.Param("slug")); err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Genre deleted", h.Helper.EmptyJsonMap())
}
