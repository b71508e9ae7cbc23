package auth

import (
	"context"
	"errors"
	"os"
	"time"

	autherrors "go-shinsei/internal/auth/errors"
	"go-shinsei/internal/directory"
	"go-shinsei/internal/shared/apperror"

	"github.com/golang-jwt/jwt/v5"
)

type Service interface {
	// Login resolves a user by id or employee code and issues a token.
	Login(ctx context.Context, userID string) (AuthResponse, error)
	GetMe(ctx context.Context, userID string) (directory.UserResponse, error)
}

type service struct {
	directory directory.Service
}

func NewService(dir directory.Service) Service {
	return &service{directory: dir}
}

func (s *service) Login(ctx context.Context, userID string) (AuthResponse, error) {
	user, err := s.directory.ResolveByCode(ctx, userID)
	if err != nil {
		var appErr *apperror.AppError
		if !errors.As(err, &appErr) || appErr.Code != apperror.CodeNotFound {
			return AuthResponse{}, err
		}
		user, err = s.directory.Resolve(ctx, userID)
		if err != nil {
			return AuthResponse{}, autherrors.ErrUserNotFound
		}
	}

	token, err := s.generateToken(user, 12*time.Hour)
	if err != nil {
		return AuthResponse{}, autherrors.ErrTokenGenerationFailed
	}

	return AuthResponse{AccessToken: token, User: user}, nil
}

func (s *service) GetMe(ctx context.Context, userID string) (directory.UserResponse, error) {
	return s.directory.Resolve(ctx, userID)
}

func (s *service) generateToken(user directory.UserResponse, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"user_id":    user.ID,
		"role":       user.Role,
		"department": user.Department,
		"exp":        time.Now().Add(ttl).Unix(),
		"iat":        time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(os.Getenv("JWT_SECRET")))
}
