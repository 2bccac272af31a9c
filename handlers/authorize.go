package handlers

import (
	"github.com/gin-gonic/gin"

	"yamdb-api/helper"
	"yamdb-api/middleware"
	"yamdb-api/models"
	"yamdb-api/permissions"
)

// authorize runs the policy table for the current request and writes
// the response itself on anything but Allow. Deny maps to 401 for
// anonymous callers and 403 for known ones; MethodNotSupported maps to
// 405 for everyone, admins included.
func authorize(c *gin.Context, hh *helper.HTTPHelper, kind permissions.Kind, owner *models.User) bool {
	caller := middleware.CurrentUser(c)

	switch permissions.Authorize(kind, c.Request.Method, caller, owner) {
	case permissions.Allow:
		return true
	case permissions.MethodNotSupported:
		hh.SendMethodNotAllowedError(c, "method not allowed", hh.EmptyJsonMap())
	default:
		if caller == nil {
			hh.SendUnauthorizedError(c, "authentication required", hh.EmptyJsonMap())
		} else {
			hh.SendForbiddenError(c, "you do not have permission to perform this action", hh.EmptyJsonMap())
		}
	}
	return false
}
