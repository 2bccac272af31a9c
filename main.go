package main

import (
	"net/http"
	"os"

	"github.com/joho/godotenv"

	"yamdb-api/cache"
	"yamdb-api/config"
	"yamdb-api/handlers"
	"yamdb-api/logger"
	"yamdb-api/mailer"
	"yamdb-api/repositories"
	"yamdb-api/services"
)

func main() {
	// Load environment variables
	_ = godotenv.Load()

	log := logger.New(os.Getenv("APP_ENV"))

	// Initialize database and optional rating cache
	db := config.InitDB()
	ratings := cache.NewRatingCache(config.InitRedis())

	// Initialize repositories
	userRepo := repositories.NewUserRepository(db)
	categoryRepo := repositories.NewCategoryRepository(db)
	genreRepo := repositories.NewGenreRepository(db)
	titleRepo := repositories.NewTitleRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	commentRepo := repositories.NewCommentRepository(db)

	// Initialize services
	codes := services.NewCodeGenerator(config.ConfirmationSecret, config.ConfirmationWindow, nil)
	notifier := mailer.NewSMTPNotifier(config.SMTPHost, config.SMTPPort, config.SMTPUsername, config.SMTPPassword, config.MailFrom)

	authService := services.NewAuthService(userRepo, codes, notifier, log)
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	genreService := services.NewGenreService(genreRepo)
	titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo, ratings)
	reviewService := services.NewReviewService(reviewRepo, titleRepo, ratings)
	commentService := services.NewCommentService(commentRepo, reviewRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	categoryHandler := handlers.NewCategoryHandler(categoryService)
	genreHandler := handlers.NewGenreHandler(genreService)
	titleHandler := handlers.NewTitleHandler(titleService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	commentHandler := handlers.NewCommentHandler(commentService)

	router := handlers.SetupRouter(
		log,
		userRepo,
		authHandler,
		userHandler,
		categoryHandler,
		genreHandler,
		titleHandler,
		reviewHandler,
		commentHandler,
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	log.Info("server starting", "port", port)
	if err := http.ListenAndServe(":"+port, router); err != nil {
		log.FatalErr("server stopped", err)
	}
}
