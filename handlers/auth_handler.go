package handlers

import (
	"yamdb-api/helper"
	"yamdb-api/models"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	authService services.AuthService
	Helper      *helper.HTTPHelper
}

func NewAuthHandler(authService services.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, Helper: &helper.HTTPHelper{}}
}

// RegisterWithEmail handles POST /auth/email. The response echoes the
// submitted pair; the confirmation code only travels by email.
func (h *AuthHandler) RegisterWithEmail(c *gin.Context) {
	var req models.EmailRegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	resp, err := h.authService.RegisterWithEmail(req)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Confirmation code sent", resp)
}

// ObtainToken handles POST /auth/token.
func (h *AuthHandler) ObtainToken(c *gin.Context) {
	var req models.TokenObtainRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	resp, err := h.authService.ObtainToken(req)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Token issued", resp)
}
