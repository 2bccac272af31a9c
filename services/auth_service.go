package services

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"yamdb-api/config"
	"yamdb-api/logger"
	"yamdb-api/mailer"
	"yamdb-api/models"
	"yamdb-api/repositories"
)

const confirmationSubject = "YaMDb: get your confirmation code!"

type AuthService interface {
	RegisterWithEmail(req models.EmailRegisterRequest) (*models.EmailRegisterResponse, error)
	ObtainToken(req models.TokenObtainRequest) (*models.TokenResponse, error)
	GetUserByID(id uint) (*models.User, error)
}

type authService struct {
	userRepo repositories.UserRepository
	codes    *CodeGenerator
	notifier mailer.Notifier
	log      *logger.Logger
}

func NewAuthService(userRepo repositories.UserRepository, codes *CodeGenerator, notifier mailer.Notifier, log *logger.Logger) AuthService {
	return &authService{
		userRepo: userRepo,
		codes:    codes,
		notifier: notifier,
		log:      log,
	}
}

// RegisterWithEmail fetches or creates the user for the submitted
// (email, username) pair, then emails a confirmation code. The code is
// never returned to the caller, only the echoed pair.
func (s *authService) RegisterWithEmail(req models.EmailRegisterRequest) (*models.EmailRegisterResponse, error) {
	user, err := s.userRepo.GetByEmailAndUsername(req.Email, req.Username)
	if err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorInternalServer{Message: "failed to look up user"}
		}

		user = &models.User{
			Username: req.Username,
			Email:    req.Email,
			Password: models.UnusablePassword(uuid.NewString()),
			Role:     models.RoleUser,
		}
		if err := s.userRepo.Create(user); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// The email or username belongs to a different identity.
				// Generic message, no hint which half collided.
				return nil, models.ErrorValidation{Message: "unable to get or create user with given attributes"}
			}
			return nil, models.ErrorInternalServer{Message: "failed to create user"}
		}
	}

	code := s.codes.Make(user)
	body := fmt.Sprintf("Hi, %s! Use the code below to get access token:\n%s", user.Username, code)

	if err := s.notifier.Send(user.Email, confirmationSubject, body); err != nil {
		s.log.ErrorErr("confirmation code delivery failed", err, "email", user.Email)
		return nil, models.ErrorDelivery{Message: "failed to deliver confirmation code"}
	}

	return &models.EmailRegisterResponse{Email: user.Email, Username: user.Username}, nil
}

// ObtainToken exchanges a valid confirmation code for a signed access
// token bound to the user id. No session state is created.
func (s *authService) ObtainToken(req models.TokenObtainRequest) (*models.TokenResponse, error) {
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to look up user"}
	}

	if !s.codes.Check(user, req.ConfirmationCode) {
		return nil, models.ErrorUnauthorized{Message: "confirmation code is invalid"}
	}

	token, err := generateToken(user)
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to generate token"}
	}

	return &models.TokenResponse{Token: token}, nil
}

func (s *authService) GetUserByID(id uint) (*models.User, error) {
	return s.userRepo.GetByID(id)
}

func generateToken(user *models.User) (string, error) {
	now := time.Now()

	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"role":     user.Role,
		"exp":      now.Add(config.JWTExpiration).Unix(),
		"iat":      now.Unix(),
		"nbf":      now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	return token.SignedString(config.JWTSecret)
}
