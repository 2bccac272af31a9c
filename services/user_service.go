package services

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"yamdb-api/models"
	"yamdb-api/repositories"
)

type UserService interface {
	GetUsers() ([]models.UserResponse, error)
	CreateUser(req models.CreateUserRequest) (*models.UserResponse, error)
	GetUserByUsername(username string) (*models.UserResponse, error)
	UpdateUser(username string, req models.UpdateUserRequest) (*models.UserResponse, error)
	DeleteUser(username string) error
	UpdateProfile(user *models.User, req models.UpdateUserRequest) (*models.UserResponse, error)
}

type userService struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetUsers() ([]models.UserResponse, error) {
	users, err := s.userRepo.GetAll()
	if err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to list users"}
	}

	out := make([]models.UserResponse, 0, len(users))
	for i := range users {
		out = append(out, models.NewUserResponse(&users[i]))
	}
	return out, nil
}

// CreateUser is the admin-driven create. Like the email flow it never
// sets a usable password; a password can only arrive via a separate
// flow that this service does not offer.
func (s *userService) CreateUser(req models.CreateUserRequest) (*models.UserResponse, error) {
	role := req.Role
	if role == "" {
		role = models.RoleUser
	}

	user := &models.User{
		Username:  req.Username,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Bio:       req.Bio,
		Password:  models.UnusablePassword(uuid.NewString()),
		Role:      role,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.ErrorConflict{Message: "user already exists"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to create user"}
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) GetUserByUsername(username string) (*models.UserResponse, error) {
	user, err := s.getByUsername(username)
	if err != nil {
		return nil, err
	}
	resp := models.NewUserResponse(user)
	return &resp, nil
}

// UpdateUser is the admin-driven update; unlike self-service it may
// change the role.
func (s *userService) UpdateUser(username string, req models.UpdateUserRequest) (*models.UserResponse, error) {
	user, err := s.getByUsername(username)
	if err != nil {
		return nil, err
	}

	applyUserUpdate(user, req)
	if req.Role != nil {
		user.Role = *req.Role
	}

	if err := s.userRepo.Update(user); err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to update user"}
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) DeleteUser(username string) error {
	user, err := s.getByUsername(username)
	if err != nil {
		return err
	}

	if err := s.userRepo.Delete(user.ID); err != nil {
		return models.ErrorInternalServer{Message: "failed to delete user"}
	}
	return nil
}

// UpdateProfile backs PATCH /users/me. Any submitted role change is
// discarded: the stored role always survives a self-service edit.
func (s *userService) UpdateProfile(user *models.User, req models.UpdateUserRequest) (*models.UserResponse, error) {
	applyUserUpdate(user, req)

	if err := s.userRepo.Update(user); err != nil {
		return nil, models.ErrorInternalServer{Message: "failed to update profile"}
	}

	resp := models.NewUserResponse(user)
	return &resp, nil
}

func (s *userService) getByUsername(username string) (*models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "user not found"}
		}
		return nil, models.ErrorInternalServer{Message: "failed to look up user"}
	}
	return user, nil
}

func applyUserUpdate(user *models.User, req models.UpdateUserRequest) {
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Bio != nil {
		user.Bio = *req.Bio
	}
}
