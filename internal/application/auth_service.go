package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-task-tracker/internal/domain/entity"
	repo "github.com/oksasatya/go-task-tracker/internal/domain/repository"
	"github.com/oksasatya/go-task-tracker/pkg/helpers"
)

var (
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// a caller cannot enumerate registered accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")
	// ErrEmailTaken is returned when the email (or derived username) is
	// already registered.
	ErrEmailTaken = errors.New("email already registered")
)

// AuthService implements registration and login on top of the user store,
// the bcrypt helpers, and the JWT manager.
type AuthService struct {
	Users  repo.UserRepository
	JWT    *helpers.JWTManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Logger: logger}
}

type RegisterInput struct {
	FirstName string
	LastName  string
	Phone     string
	Email     string
	DOB       string
	Password  string
}

// Register hashes the password and persists the new user. The response path
// never carries the hash or the plaintext back to the caller.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if existing, err := s.Users.GetByEmail(ctx, in.Email); err == nil && existing != nil {
		return ErrEmailTaken
	} else if err != nil && !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}

	u := &entity.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Phone:     in.Phone,
		Email:     in.Email,
		DOB:       in.DOB,
		Username:  entity.DeriveUsername(in.FirstName, in.LastName, in.DOB),
		Password:  hash,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		// The unique index catches the race between the pre-check and the
		// insert, and the derived-username collision.
		if errors.Is(err, repo.ErrDuplicate) {
			return ErrEmailTaken
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("email", in.Email).Error("user create failed")
		}
		return err
	}
	return nil
}

// Login verifies credentials and issues an access token. Unknown email and
// wrong password produce the identical error; storage failures propagate
// unchanged so the handler surfaces them as an opaque server error instead
// of a credential rejection.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", time.Time{}, ErrInvalidCredentials
		}
		if s.Logger != nil {
			s.Logger.WithError(err).Error("user lookup failed")
		}
		return "", time.Time{}, err
	}
	if u == nil || !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate access token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}
