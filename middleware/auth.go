package middleware

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v4"

	"yamdb-api/config"
	"yamdb-api/helper"
	"yamdb-api/models"
	"yamdb-api/repositories"
)

var HTTPHelper = &helper.HTTPHelper{}

const currentUserKey = "currentUser"

type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware requires a valid bearer token and stores the resolved
// user in the context. The user is loaded from storage rather than
// trusted from claims so role and flag changes take effect immediately.
func AuthMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := userFromRequest(c, userRepo)
		if err != nil {
			HTTPHelper.SendUnauthorizedError(c, err.Error(), HTTPHelper.EmptyJsonMap())
			c.Abort()
			return
		}

		c.Set(currentUserKey, user)
		c.Next()
	}
}

// CurrentUser returns the authenticated caller, or nil for anonymous
// requests.
func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(currentUserKey); ok {
		if user, ok := v.(*models.User); ok {
			return user
		}
	}
	return nil
}

func userFromRequest(c *gin.Context, userRepo repositories.UserRepository) (*models.User, error) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" {
		return nil, errors.New("authorization header required")
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return nil, errors.New("bearer token required")
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return config.JWTSecret, nil
	})
	if err != nil {
		return nil, errors.New("invalid token: " + err.Error())
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	user, err := userRepo.GetByID(claims.UserID)
	if err != nil {
		return nil, errors.New("token user no longer exists")
	}

	return user, nil
}
