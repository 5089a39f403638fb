package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/rutushah/To-do-application/internal/model"
	"github.com/rutushah/To-do-application/internal/repository"
)

// The login failure message never says which field was wrong.
const msgInvalidCredentials = "Invalid username or password"

// AuthService registers and authenticates users against its repository and
// binds the result to the caller's Session.
type AuthService struct {
	users *repository.UserRepository
}

func NewAuthService(users *repository.UserRepository) *AuthService {
	return &AuthService{users: users}
}

// Register creates a new user and logs it into sess. Username uniqueness is
// case-sensitive exact match.
func (s *AuthService) Register(ctx context.Context, sess *Session, name, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, validationf("Username cannot be empty.")
	}
	if strings.TrimSpace(password) == "" {
		return nil, validationf("Password cannot be empty.")
	}

	_, err := s.users.FindByName(ctx, name)
	switch {
	case err == nil:
		return nil, validationf("User already exists, please select a different username.")
	case errors.Is(err, gorm.ErrRecordNotFound):
		// free to register
	default:
		return nil, fmt.Errorf("find user: %w", err)
	}

	user, err := s.users.Create(ctx, name, password)
	if err != nil {
		return nil, err
	}

	sess.bind(user)
	return user, nil
}

// Login matches name and password exactly and binds the user to sess. All
// failure modes report the same generic message.
func (s *AuthService) Login(ctx context.Context, sess *Session, name, password string) (*model.User, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(password) == "" {
		return nil, validationf(msgInvalidCredentials)
	}

	user, err := s.users.ValidateCredentials(ctx, strings.TrimSpace(name), password)
	switch {
	case err == nil:
		sess.bind(user)
		return user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, validationf(msgInvalidCredentials)
	default:
		return nil, fmt.Errorf("validate credentials: %w", err)
	}
}

func (s *AuthService) Logout(sess *Session) {
	sess.clear()
}
