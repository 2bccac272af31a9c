package handlers

import (
	"strconv"

	"yamdb-api/helper"
	"yamdb-api/models"
	"yamdb-api/permissions"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

type TitleHandler struct {
	titleService services.TitleService
	Helper       *helper.HTTPHelper
}

func NewTitleHandler(titleService services.TitleService) *TitleHandler {
	return &TitleHandler{titleService: titleService, Helper: &helper.HTTPHelper{}}
}

func (h *TitleHandler) GetTitles(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindTitle, nil) {
		return
	}

	var params models.TitleListParams
	if err := c.ShouldBindQuery(&params); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if params.Page <= 0 {
		params.Page = 1
	}
	if params.Limit <= 0 {
		params.Limit = 10
	}

	titles, total, err := h.titleService.GetTitles(params)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", gin.H{
		"titles": titles,
		"total":  total,
		"paging": h.Helper.GeneratePaging(c, 0, 0, params.Limit, params.Page, int(total)),
	})
}

func (h *TitleHandler) GetTitle(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindTitle, nil) {
		return
	}

	id, ok := h.titleID(c)
	if !ok {
		return
	}

	title, err := h.titleService.GetTitle(id)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", title)
}

func (h *TitleHandler) CreateTitle(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindTitle, nil) {
		return
	}

	var req models.CreateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	title, err := h.titleService.CreateTitle(req)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Title created", title)
}

func (h *TitleHandler) UpdateTitle(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindTitle, nil) {
		return
	}

	id, ok := h.titleID(c)
	if !ok {
		return
	}

	var req models.UpdateTitleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	title, err := h.titleService.UpdateTitle(id, req)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Title updated", title)
}

func (h *TitleHandler) DeleteTitle(c *gin.Context) {
	if !authorize(c, h.Helper, permissions.KindTitle, nil) {
		return
	}

	id, ok := h.titleID(c)
	if !ok {
		return
	}

	if err := h.titleService.DeleteTitle(id); err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Title deleted", h.Helper.EmptyJsonMap())
}

func (h *TitleHandler) titleID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("title_id"), 10, 32)
	if err != nil {
		h.Helper.SendBadRequest(c, "invalid title id", h.Helper.EmptyJsonMap())
		return 0, false
	}
	return uint(id), true
}
