package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"github.com/TanerSahin19/GriWear/internal/model"
	"github.com/TanerSahin19/GriWear/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

const (
	MinPasswordLen = 8
	MaxUsernameLen = 150
)

var (
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)
)

type AuthService struct {
	Users *repository.AuthRepository
}

func NewAuthService(u *repository.AuthRepository) *AuthService {
	return &AuthService{Users: u}
}

func (s *AuthService) validateUsername(username string) error {
	if username == "" {
		return errors.New("username is required")
	}
	if len(username) > MaxUsernameLen {
		return fmt.Errorf("username too long: at most %d characters", MaxUsernameLen)
	}
	return nil
}

func (s *AuthService) validateEmail(email string) error {
	// email is optional at registration
	if email == "" {
		return nil
	}
	if !emailRegex.MatchString(email) {
		return errors.New("invalid email format")
	}
	return nil
}

func (s *AuthService) validatePassword(pw string) error {
	if len(pw) < MinPasswordLen {
		return fmt.Errorf("password too short: must be at least %d characters", MinPasswordLen)
	}
	return nil
}

// Register creates a user with role "user".
func (s *AuthService) Register(ctx context.Context, username, email, password string) (int64, error) {
	if err := s.validateUsername(username); err != nil {
		return 0, err
	}
	if err := s.validateEmail(email); err != nil {
		return 0, err
	}
	if err := s.validatePassword(password); err != nil {
		return 0, err
	}
	exists, err := s.Users.UsernameExists(ctx, username)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, ErrUsernameTaken
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.Users.CreateUser(ctx, username, email, string(hash), "user")
}

// Login authenticates with username + password and returns the user (without
// passwordhash). The error never reveals which of the two was wrong.
func (s *AuthService) Login(ctx context.Context, username, password string) (*model.User, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	// zero out password before returning
	u.PasswordHash = ""
	return u, nil
}

// Me resolves the authenticated user's profile.
func (s *AuthService) Me(ctx context.Context, userID int64) (*model.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.New("user not found")
	}
	u.PasswordHash = ""
	return u, nil
}
