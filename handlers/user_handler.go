package handlers

import (
	"yamdb-api/helper"
	"yamdb-api/middleware"
	"yamdb-api/models"
	"yamdb-api/services"

	"github.com/gin-gonic/gin"
)

// UserHandler serves the admin user management endpoints plus the
// self-service "/users/me" alias, dispatched on the username parameter.
type UserHandler struct {
	userService services.UserService
	Helper      *helper.HTTPHelper
}

func NewUserHandler(userService services.UserService) *UserHandler {
	return &UserHandler{userService: userService, Helper: &helper.HTTPHelper{}}
}

func (h *UserHandler) GetUsers(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	users, err := h.userService.GetUsers()
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", users)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	if !h.requireAdmin(c) {
		return
	}

	var req models.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	user, err := h.userService.CreateUser(req)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User created", user)
}

func (h *UserHandler) GetUser(c *gin.Context) {
	if c.Param("username") == "me" {
		caller := middleware.CurrentUser(c)
		h.Helper.SendSuccess(c, "Success", models.NewUserResponse(caller))
		return
	}

	if !h.requireAdmin(c) {
		return
	}

	user, err := h.userService.GetUserByUsername(c.Param("username"))
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "Success", user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	var req models.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.Helper.SendBadRequest(c, err.Error(), h.Helper.EmptyJsonMap())
		return
	}

	if c.Param("username") == "me" {
		// Self-service edit: the service discards any submitted role
		// change, the stored role always survives.
		user, err := h.userService.UpdateProfile(middleware.CurrentUser(c), req)
		if err != nil {
			h.Helper.SendErrorResult(c, err)
			return
		}
		h.Helper.SendSuccess(c, "Profile updated", user)
		return
	}

	if !h.requireAdmin(c) {
		return
	}

	user, err := h.userService.UpdateUser(c.Param("username"), req)
	if err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User updated", user)
}

func (h *UserHandler) DeleteUser(c *gin.Context) {
	if c.Param("username") == "me" {
		h.Helper.SendMethodNotAllowedError(c, "method not allowed", h.Helper.EmptyJsonMap())
		return
	}

	if !h.requireAdmin(c) {
		return
	}

	if err := h.userService.DeleteUser(c.Param("username")); err != nil {
		h.Helper.SendErrorResult(c, err)
		return
	}

	h.Helper.SendSuccess(c, "User deleted", h.Helper.EmptyJsonMap())
}

func (h *UserHandler) requireAdmin(c *gin.Context) bool {
	caller := middleware.CurrentUser(c)
	if caller == nil || !caller.IsAdmin() {
		h.Helper.SendForbiddenError(c, "admin privileges required", h.Helper.EmptyJsonMap())
		return false
	}
	return true
}
