package models

import "time"

type EmailRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=1,max=150"`
}

// EmailRegisterResponse echoes the submitted pair back. The code itself
// travels only by email.
type EmailRegisterResponse struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type TokenObtainRequest struct {
	Email            string `json:"email" binding:"required,email"`
	ConfirmationCode string `json:"confirmation_code" binding:"required"`
}

type TokenResponse struct {
	Token string `json:"token"`
}

type CreateUserRequest struct {
	Username  string   `json:"username" binding:"required,min=1,max=150"`
	Email     string   `json:"email" binding:"required,email"`
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Bio       string   `json:"bio" binding:"max=2000"`
	Role      UserRole `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

type UpdateUserRequest struct {
	FirstName *string   `json:"first_name"`
	LastName  *string   `json:"last_name"`
	Bio       *string   `json:"bio" binding:"omitempty,max=2000"`
	Role      *UserRole `json:"role" binding:"omitempty,oneof=user moderator admin"`
}

type UserResponse struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	Username  string   `json:"username"`
	Bio       string   `json:"bio"`
	Email     string   `json:"email"`
	Role      UserRole `json:"role"`
}

func NewUserResponse(u *User) UserResponse {
	return UserResponse{
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  u.Username,
		Bio:       u.Bio,
		Email:     u.Email,
		Role:      u.Role,
	}
}

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=128"`
	Slug string `json:"slug" binding:"omitempty,max=128"`
}

type CreateGenreRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Slug string `json:"slug" binding:"omitempty,max=100"`
}

type CreateTitleRequest struct {
	Name        string   `json:"name" binding:"required,min=1,max=128"`
	Year        *int     `json:"year"`
	Description string   `json:"description"`
	Category    string   `json:"category"`
	Genre       []string `json:"genre"`
}

type UpdateTitleRequest struct {
	Name        *string   `json:"name" binding:"omitempty,min=1,max=128"`
	Year        *int      `json:"year"`
	Description *string   `json:"description"`
	Category    *string   `json:"category"`
	Genre       *[]string `json:"genre"`
}

type CreateReviewRequest struct {
	Text  string `json:"text" binding:"required"`
	Score int    `json:"score" binding:"required,min=1,max=10"`
}

type UpdateReviewRequest struct {
	Text  *string `json:"text"`
	Score *int    `json:"score" binding:"omitempty,min=1,max=10"`
}

type CreateCommentRequest struct {
	Text string `json:"text" binding:"required"`
}

type UpdateCommentRequest struct {
	Text *string `json:"text"`
}

// ReviewResponse serializes the author as a username, not an id.
type ReviewResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	Score   int       `json:"score"`
	PubDate time.Time `json:"pub_date"`
}

func NewReviewResponse(r *Review) ReviewResponse {
	return ReviewResponse{
		ID:      r.ID,
		Author:  r.Author.Username,
		Text:    r.Text,
		Score:   r.Score,
		PubDate: r.PubDate,
	}
}

func NewReviewResponseList(reviews []Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, NewReviewResponse(&reviews[i]))
	}
	return out
}

type CommentResponse struct {
	ID      uint      `json:"id"`
	Author  string    `json:"author"`
	Text    string    `json:"text"`
	PubDate time.Time `json:"pub_date"`
}

func NewCommentResponse(c *Comment) CommentResponse {
	return CommentResponse{
		ID:      c.ID,
		Author:  c.Author.Username,
		Text:    c.Text,
		PubDate: c.PubDate,
	}
}

func NewCommentResponseList(comments []Comment) []CommentResponse {
	out := make([]CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, NewCommentResponse(&comments[i]))
	}
	return out
}

type TitleListParams struct {
	Year     *int   `form:"year"`
	Genre    string `form:"genre"`
	Category string `form:"category"`
	Name     string `form:"name"`
	Page     int    `form:"page,default=1"`
	Limit    int    `form:"limit,default=10"`
}

type NameSearchParams struct {
	Search string `form:"search"`
}
