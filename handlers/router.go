package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"yamdb-api/logger"
	"yamdb-api/middleware"
	"yamdb-api/repositories"
)

// SetupRouter wires every endpoint. Read endpoints are open to anyone;
// write endpoints sit behind the auth middleware and run the policy
// table from there. HandleMethodNotAllowed makes unregistered methods
// (PATCH on categories, for instance) come back as 405 instead of 404.
func SetupRouter(
	log *logger.Logger,
	userRepo repositories.UserRepository,
	authHandler *AuthHandler,
	userHandler *UserHandler,
	categoryHandler *CategoryHandler,
	genreHandler *GenreHandler,
	titleHandler *TitleHandler,
	reviewHandler *ReviewHandler,
	commentHandler *CommentHandler,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	if log != nil {
		router.Use(middleware.RequestLogger(log))
	}
	router.HandleMethodNotAllowed = true

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	authRequired := middleware.AuthMiddleware(userRepo)

	v1 := router.Group("/api/v1")
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/email", authHandler.RegisterWithEmail)
			auth.POST("/token", authHandler.ObtainToken)
		}

		users := v1.Group("/users")
		users.Use(authRequired)
		{
			users.GET("", userHandler.GetUsers)
			users.POST("", userHandler.CreateUser)
			users.GET("/:username", userHandler.GetUser)
			users.PATCH("/:username", userHandler.UpdateUser)
			users.DELETE("/:username", userHandler.DeleteUser)
		}

		categories := v1.Group("/categories")
		{
			categories.GET("", categoryHandler.GetCategories)
			categories.POST("", authRequired, categoryHandler.CreateCategory)
			categories.DELETE("/:slug", authRequired, categoryHandler.DeleteCategory)
		}

		genres := v1.Group("/genres")
		{
			genres.GET("", genreHandler.GetGenres)
			genres.POST("", authRequired, genreHandler.CreateGenre)
			genres.DELETE("/:slug", authRequired, genreHandler.DeleteGenre)
		}

		titles := v1.Group("/titles")
		{
			titles.GET("", titleHandler.GetTitles)
			titles.GET("/:title_id", titleHandler.GetTitle)
			titles.POST("", authRequired, titleHandler.CreateTitle)
			titles.PATCH("/:title_id", authRequired, titleHandler.UpdateTitle)
			titles.DELETE("/:title_id", authRequired, titleHandler.DeleteTitle)

			reviews := titles.Group("/:title_id/reviews")
			{
				reviews.GET("", reviewHandler.GetReviews)
				reviews.GET("/:review_id", reviewHandler.GetReview)
				reviews.POST("", authRequired, reviewHandler.CreateReview)
				reviews.PATCH("/:review_id", authRequired, reviewHandler.UpdateReview)
				reviews.DELETE("/:review_id", authRequired, reviewHandler.DeleteReview)

				comments := reviews.Group("/:review_id/comments")
				{
					comments.GET("", commentHandler.GetComments)
					comments.GET("/:comment_id", commentHandler.GetComment)
					comments.POST("", authRequired, commentHandler.CreateComment)
					comments.PATCH("/:comment_id", authRequired, commentHandler.UpdateComment)
					comments.DELETE("/:comment_id", authRequired, commentHandler.DeleteComment)
				}
			}
		}
	}

	return router
}
