package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/inamrestro/restaurant-app/metrics"
	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

const maxPasswordBytes = 72

type SignupInput struct {
	FirstName string `form:"first_name" json:"first_name"`
	LastName  string `form:"last_name" json:"last_name"`
	Username  string `form:"username" json:"username" binding:"required"`
	Email     string `form:"email" json:"email"`
	Password  string `form:"password" json:"password" binding:"required"`
	Password2 string `form:"password2" json:"password2"`
}

type AuthService struct {
	Users   *repository.UserRepository
	Metrics *metrics.Metrics
}

func NewAuthService(db *gorm.DB, m *metrics.Metrics) *AuthService {
	return &AuthService{Users: repository.NewUserRepository(db), Metrics: m}
}

// Signup creates a regular (non-staff) account.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if in.Password != in.Password2 {
		return nil, ErrPasswordMismatch
	}
	// bcrypt only reads the first 72 bytes
	if len(in.Password) > maxPasswordBytes {
		return nil, ErrPasswordTooLong
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &models.User{
		Username:  in.Username,
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Email:     in.Email,
		Password:  string(hashed),
	}
	if err := s.Users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("create user %s: %w", in.Username, err)
	}

	s.Metrics.SignedUp()
	return user, nil
}

func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.Users.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.Metrics.LoginFailed()
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		s.Metrics.LoginFailed()
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

func (s *AuthService) Profile(ctx context.Context, userID uint) (*models.User, error) {
	return s.Users.Get(ctx, userID)
}
