package directory

import (
	"context"
	"errors"

	directoryerrors "go-shinsei/internal/directory/errors"

	"gorm.io/gorm"
)

// Service is the read-only user directory consulted by the workflow engine.
type Service interface {
	Resolve(ctx context.Context, userID string) (UserResponse, error)
	ResolveByCode(ctx context.Context, code string) (UserResponse, error)
	GetAll(ctx context.Context) ([]UserResponse, error)
	DirectReports(ctx context.Context, managerID string) ([]UserResponse, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Resolve(ctx context.Context, userID string) (UserResponse, error) {
	u, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, directoryerrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) ResolveByCode(ctx context.Context, code string) (UserResponse, error) {
	u, err := s.repo.FindByCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return UserResponse{}, directoryerrors.ErrUserNotFound
		}
		return UserResponse{}, err
	}
	return mapToResponse(*u), nil
}

func (s *service) GetAll(ctx context.Context) ([]UserResponse, error) {
	users, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}

func (s *service) DirectReports(ctx context.Context, managerID string) ([]UserResponse, error) {
	users, err := s.repo.FindByManager(ctx, managerID)
	if err != nil {
		return nil, err
	}
	return mapToListResponse(users), nil
}
