package tests

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"yamdb-api/config"
	"yamdb-api/handlers"
	"yamdb-api/logger"
	"yamdb-api/models"
	"yamdb-api/repositories"
	"yamdb-api/services"
)

// captureNotifier records outgoing mail so tests can read the
// confirmation code the way a real user would.
type captureNotifier struct {
	fail bool
	sent []string
}

func (n *captureNotifier) Send(to, subject, body string) error {
	if n.fail {
		return errors.New("smtp unavailable")
	}
	n.sent = append(n.sent, body)
	return nil
}

// lastCode pulls the code off the final line of the last email body.
func (n *captureNotifier) lastCode() string {
	if len(n.sent) == 0 {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(n.sent[len(n.sent)-1]), "\n")
	return lines[len(lines)-1]
}

type envelope struct {
	Code        int             `json:"code"`
	CodeType    string          `json:"code_type"`
	CodeMessage json.RawMessage `json:"code_message"`
	Data        json.RawMessage `json:"data"`
}

type IntegrationTestSuite struct {
	suite.Suite
	db       *gorm.DB
	router   *gin.Engine
	notifier *captureNotifier
	userRepo repositories.UserRepository

	adminToken     string
	moderatorToken string
	userToken      string
	user2Token     string
}

func (suite *IntegrationTestSuite) SetupSuite() {
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file:integration?mode=memory&cache=shared"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		suite.T().Fatal("Failed to open test database:", err)
	}
	if err := config.Migrate(db); err != nil {
		suite.T().Fatal("Failed to migrate test database:", err)
	}

	suite.db = db
	suite.notifier = &captureNotifier{}
	suite.setupRouter()
}

func (suite *IntegrationTestSuite) setupRouter() {
	userRepo := repositories.NewUserRepository(suite.db)
	categoryRepo := repositories.NewCategoryRepository(suite.db)
	genreRepo := repositories.NewGenreRepository(suite.db)
	titleRepo := repositories.NewTitleRepository(suite.db)
	reviewRepo := repositories.NewReviewRepository(suite.db)
	commentRepo := repositories.NewCommentRepository(suite.db)

	codes := services.NewCodeGenerator([]byte("integration-test-secret"), 15*time.Minute, time.Now)

	authService := services.NewAuthService(userRepo, codes, suite.notifier, logger.New("local"))
	userService := services.NewUserService(userRepo)
	categoryService := services.NewCategoryService(categoryRepo)
	genreService := services.NewGenreService(genreRepo)
	titleService := services.NewTitleService(titleRepo, categoryRepo, genreRepo, nil)
	reviewService := services.NewReviewService(reviewRepo, titleRepo, nil)
	commentService := services.NewCommentService(commentRepo, reviewRepo)

	suite.userRepo = userRepo
	suite.router = handlers.SetupRouter(
		nil,
		userRepo,
		handlers.NewAuthHandler(authService),
		handlers.NewUserHandler(userService),
		handlers.NewCategoryHandler(categoryService),
		handlers.NewGenreHandler(genreService),
		handlers.NewTitleHandler(titleService),
		handlers.NewReviewHandler(reviewService),
		handlers.NewCommentHandler(commentService),
	)
}

func (suite *IntegrationTestSuite) SetupTest() {
	suite.db.Exec("DELETE FROM comments")
	suite.db.Exec("DELETE FROM reviews")
	suite.db.Exec("DELETE FROM title_genres")
	suite.db.Exec("DELETE FROM titles")
	suite.db.Exec("DELETE FROM genres")
	suite.db.Exec("DELETE FROM categories")
	suite.db.Exec("DELETE FROM users")

	suite.notifier.fail = false
	suite.notifier.sent = nil

	// Elevated accounts get their roles straight in storage; everyone
	// then authenticates exactly as a real client would.
	suite.NoError(suite.userRepo.Create(&models.User{
		Username: "boss", Email: "boss@example.com", Role: models.RoleAdmin,
		Password: models.UnusablePassword("seed"),
	}))
	suite.NoError(suite.userRepo.Create(&models.User{
		Username: "mod", Email: "mod@example.com", Role: models.RoleModerator,
		Password: models.UnusablePassword("seed"),
	}))

	suite.adminToken = suite.obtainToken("boss@example.com", "boss")
	suite.moderatorToken = suite.obtainToken("mod@example.com", "mod")
	suite.userToken = suite.obtainToken("alice@example.com", "alice")
	suite.user2Token = suite.obtainToken("bob@example.com", "bob")
}

// obtainToken walks the full passwordless flow: request a code by
// email, read it off the captured message, exchange it for a token.
func (suite *IntegrationTestSuite) obtainToken(email, username string) string {
	w := suite.request(http.MethodPost, "/api/v1/auth/email", "", gin.H{
		"email":    email,
		"username": username,
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/auth/token", "", gin.H{
		"email":             email,
		"confirmation_code": suite.notifier.lastCode(),
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var resp models.TokenResponse
	suite.decodeData(w, &resp)
	suite.Require().NotEmpty(resp.Token)
	return resp.Token
}

func (suite *IntegrationTestSuite) request(method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	var body *bytes.Buffer
	if payload != nil {
		raw, err := json.Marshal(payload)
		suite.Require().NoError(err)
		body = bytes.NewBuffer(raw)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *IntegrationTestSuite) decodeData(w *httptest.ResponseRecorder, out interface{}) {
	var env envelope
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &env))
	suite.Require().NoError(json.Unmarshal(env.Data, out))
}

func (suite *IntegrationTestSuite) createTitle(name string) uint {
	w := suite.request(http.MethodPost, "/api/v1/categories", suite.adminToken, gin.H{"name": "Movies", "slug": "movies"})
	suite.Require().Equal(http.StatusOK, w.Code)

	year := 2014
	w = suite.request(http.MethodPost, "/api/v1/titles", suite.adminToken, gin.H{
		"name":     name,
		"year":     year,
		"category": "movies",
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var title models.Title
	suite.decodeData(w, &title)
	return title.ID
}

func (suite *IntegrationTestSuite) TestConfirmationCodeFlow() {
	// A fresh pair creates the account and immediately works.
	token := suite.obtainToken("carol@example.com", "carol")

	w := suite.request(http.MethodGet, "/api/v1/users/me", token, nil)
	suite.Equal(http.StatusOK, w.Code)

	var profile models.UserResponse
	suite.decodeData(w, &profile)
	suite.Equal("carol", profile.Username)
	suite.Equal(models.RoleUser, profile.Role)

	// A garbage code is rejected without hints.
	w = suite.request(http.MethodPost, "/api/v1/auth/token", "", gin.H{
		"email":             "carol@example.com",
		"confirmation_code": "AAAAAAAAAAAA",
	})
	suite.Equal(http.StatusUnauthorized, w.Code)

	// An email nobody registered is a distinct not-found.
	w = suite.request(http.MethodPost, "/api/v1/auth/token", "", gin.H{
		"email":             "ghost@example.com",
		"confirmation_code": "AAAAAAAAAAAA",
	})
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestSignupPairCollision() {
	w := suite.request(http.MethodPost, "/api/v1/auth/email", "", gin.H{
		"email":    "alice@example.com",
		"username": "not-alice",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/auth/email", "", gin.H{
		"email":    "not-alice@example.com",
		"username": "alice",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *IntegrationTestSuite) TestProfileRoleLock() {
	w := suite.request(http.MethodPatch, "/api/v1/users/me", suite.userToken, gin.H{
		"bio":  "just a reader",
		"role": "admin",
	})
	suite.Equal(http.StatusOK, w.Code)

	var profile models.UserResponse
	suite.decodeData(w, &profile)
	suite.Equal("just a reader", profile.Bio)
	suite.Equal(models.RoleUser, profile.Role)

	// The role must also be untouched in storage, not just the echo.
	stored, err := suite.userRepo.GetByUsername("alice")
	suite.NoError(err)
	suite.Equal(models.RoleUser, stored.Role)

	w = suite.request(http.MethodDelete, "/api/v1/users/me", suite.userToken, nil)
	suite.Equal(http.StatusMethodNotAllowed, w.Code)
}

func (suite *IntegrationTestSuite) TestCategoryPolicy() {
	w := suite.request(http.MethodGet, "/api/v1/categories", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	payload := gin.H{"name": "Books", "slug": "books"}

	w = suite.request(http.MethodPost, "/api/v1/categories", "", payload)
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/categories", suite.userToken, payload)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/categories", suite.moderatorToken, payload)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/categories", suite.adminToken, payload)
	suite.Equal(http.StatusOK, w.Code)

	// No handler is registered for PATCH on categories at all, so even
	// the admin gets a method-not-allowed, not a forbidden.
	w = suite.request(http.MethodPatch, "/api/v1/categories/books", suite.adminToken, gin.H{"name": "Novels"})
	suite.Equal(http.StatusMethodNotAllowed, w.Code)

	w = suite.request(http.MethodDelete, "/api/v1/categories/books", suite.userToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodDelete, "/api/v1/categories/books", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodDelete, "/api/v1/categories/books", suite.adminToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestUserAdministration() {
	w := suite.request(http.MethodGet, "/api/v1/users", suite.userToken, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/users", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/users", suite.adminToken, gin.H{
		"username": "newguy",
		"email":    "newguy@example.com",
		"role":     "moderator",
	})
	suite.Equal(http.StatusOK, w.Code)

	var created models.UserResponse
	suite.decodeData(w, &created)
	suite.Equal(models.RoleModerator, created.Role)

	// Duplicate pair from the admin surface is a conflict.
	w = suite.request(http.MethodPost, "/api/v1/users", suite.adminToken, gin.H{
		"username": "newguy",
		"email":    "newguy@example.com",
	})
	suite.Equal(http.StatusConflict, w.Code)

	w = suite.request(http.MethodPatch, "/api/v1/users/newguy", suite.adminToken, gin.H{"role": "admin"})
	suite.Equal(http.StatusOK, w.Code)

	var updated models.UserResponse
	suite.decodeData(w, &updated)
	suite.Equal(models.RoleAdmin, updated.Role)

	w = suite.request(http.MethodDelete, "/api/v1/users/newguy", suite.adminToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, "/api/v1/users/newguy", suite.adminToken, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestTitleLifecycleAndRating() {
	w := suite.request(http.MethodPost, "/api/v1/categories", suite.adminToken, gin.H{"name": "Movies", "slug": "movies"})
	suite.Require().Equal(http.StatusOK, w.Code)
	w = suite.request(http.MethodPost, "/api/v1/genres", suite.adminToken, gin.H{"name": "Drama", "slug": "drama"})
	suite.Require().Equal(http.StatusOK, w.Code)
	w = suite.request(http.MethodPost, "/api/v1/genres", suite.adminToken, gin.H{"name": "Sci-Fi", "slug": "sci-fi"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/titles", suite.userToken, gin.H{"name": "Interstellar"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPost, "/api/v1/titles", suite.adminToken, gin.H{
		"name":     "Interstellar",
		"year":     2014,
		"category": "movies",
		"genre":    []string{"drama", "sci-fi"},
	})
	suite.Require().Equal(http.StatusOK, w.Code)

	var title models.Title
	suite.decodeData(w, &title)
	suite.Require().NotNil(title.Category)
	suite.Equal("movies", title.Category.Slug)
	suite.Len(title.Genre, 2)

	// A release year too far in the future is rejected.
	w = suite.request(http.MethodPost, "/api/v1/titles", suite.adminToken, gin.H{
		"name": "From the Far Future",
		"year": time.Now().Year() + models.MaxYearOffset + 1,
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	// Unknown category slug is a validation error, not a server error.
	w = suite.request(http.MethodPost, "/api/v1/titles", suite.adminToken, gin.H{
		"name":     "Mystery",
		"category": "no-such-category",
	})
	suite.Equal(http.StatusBadRequest, w.Code)

	reviewPath := fmt.Sprintf("/api/v1/titles/%d/reviews", title.ID)
	w = suite.request(http.MethodPost, reviewPath, suite.userToken, gin.H{"text": "stunning", "score": 5})
	suite.Require().Equal(http.StatusOK, w.Code)
	w = suite.request(http.MethodPost, reviewPath, suite.user2Token, gin.H{"text": "a masterpiece", "score": 10})
	suite.Require().Equal(http.StatusOK, w.Code)

	// Second review from the same author is a conflict.
	w = suite.request(http.MethodPost, reviewPath, suite.userToken, gin.H{"text": "changed my mind", "score": 1})
	suite.Equal(http.StatusConflict, w.Code)

	// Anyone, even anonymous, reads the averaged rating.
	w = suite.request(http.MethodGet, fmt.Sprintf("/api/v1/titles/%d", title.ID), "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var rated models.Title
	suite.decodeData(w, &rated)
	suite.Require().NotNil(rated.Rating)
	suite.InDelta(7.5, *rated.Rating, 0.001)

	w = suite.request(http.MethodGet, "/api/v1/titles?category=movies&year=2014", "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var list struct {
		Titles []models.Title `json:"titles"`
		Total  int64          `json:"total"`
	}
	suite.decodeData(w, &list)
	suite.Equal(int64(1), list.Total)
	suite.Require().Len(list.Titles, 1)
	suite.Require().NotNil(list.Titles[0].Rating)
	suite.InDelta(7.5, *list.Titles[0].Rating, 0.001)
}

func (suite *IntegrationTestSuite) TestReviewModeration() {
	titleID := suite.createTitle("Arrival")
	reviewPath := fmt.Sprintf("/api/v1/titles/%d/reviews", titleID)

	w := suite.request(http.MethodPost, reviewPath, "", gin.H{"text": "nope", "score": 1})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, reviewPath, suite.userToken, gin.H{"text": "loved it", "score": 8})
	suite.Require().Equal(http.StatusOK, w.Code)

	var review models.ReviewResponse
	suite.decodeData(w, &review)
	suite.Equal("alice", review.Author)

	itemPath := fmt.Sprintf("%s/%d", reviewPath, review.ID)

	w = suite.request(http.MethodPatch, itemPath, suite.user2Token, gin.H{"text": "hijacked"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPatch, itemPath, suite.moderatorToken, gin.H{"score": 6})
	suite.Equal(http.StatusOK, w.Code)

	var moderated models.ReviewResponse
	suite.decodeData(w, &moderated)
	suite.Equal(6, moderated.Score)
	suite.Equal("alice", moderated.Author)

	w = suite.request(http.MethodDelete, itemPath, suite.user2Token, nil)
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodDelete, itemPath, suite.userToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodGet, itemPath, "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestCommentFlow() {
	titleID := suite.createTitle("Dune")
	reviewPath := fmt.Sprintf("/api/v1/titles/%d/reviews", titleID)

	w := suite.request(http.MethodPost, reviewPath, suite.userToken, gin.H{"text": "dense but great", "score": 9})
	suite.Require().Equal(http.StatusOK, w.Code)

	var review models.ReviewResponse
	suite.decodeData(w, &review)

	commentPath := fmt.Sprintf("%s/%d/comments", reviewPath, review.ID)

	w = suite.request(http.MethodPost, commentPath, "", gin.H{"text": "anon"})
	suite.Equal(http.StatusUnauthorized, w.Code)

	w = suite.request(http.MethodPost, commentPath, suite.user2Token, gin.H{"text": "agreed"})
	suite.Require().Equal(http.StatusOK, w.Code)

	var comment models.CommentResponse
	suite.decodeData(w, &comment)
	suite.Equal("bob", comment.Author)

	// Anonymous listing works.
	w = suite.request(http.MethodGet, commentPath, "", nil)
	suite.Equal(http.StatusOK, w.Code)

	var comments []models.CommentResponse
	suite.decodeData(w, &comments)
	suite.Len(comments, 1)

	itemPath := fmt.Sprintf("%s/%d", commentPath, comment.ID)

	// The review author has no special power over someone else's comment.
	w = suite.request(http.MethodPatch, itemPath, suite.userToken, gin.H{"text": "edited by reviewer"})
	suite.Equal(http.StatusForbidden, w.Code)

	w = suite.request(http.MethodPatch, itemPath, suite.user2Token, gin.H{"text": "edited"})
	suite.Equal(http.StatusOK, w.Code)

	w = suite.request(http.MethodDelete, itemPath, suite.moderatorToken, nil)
	suite.Equal(http.StatusOK, w.Code)

	// Comments are looked up through their review, a mismatched review
	// id is a not-found.
	w = suite.request(http.MethodGet, fmt.Sprintf("%s/%d/comments", reviewPath, review.ID+100), "", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *IntegrationTestSuite) TestCodeDeliveryFailure() {
	suite.notifier.fail = true

	w := suite.request(http.MethodPost, "/api/v1/auth/email", "", gin.H{
		"email":    "dave@example.com",
		"username": "dave",
	})
	suite.Equal(http.StatusBadGateway, w.Code)
}

func TestIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(IntegrationTestSuite))
}
