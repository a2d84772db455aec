package service

import (
	"context"

	"portfolioAPI/internal/apierror"
	"portfolioAPI/internal/models"
	"portfolioAPI/internal/repository"
)

type UserService interface {
	// Role is admin for known users and read-only for everyone else.
	Role(ctx context.Context, googleID string) (string, error)
}

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) Role(ctx context.Context, googleID string) (string, error) {
	if googleID == "" {
		return models.RoleReadOnly, nil
	}

	user, err := s.userRepo.GetByGoogleID(ctx, googleID)
	if err != nil {
		return "", apierror.Internal("could not load user", err)
	}
	if user == nil {
		return models.RoleReadOnly, nil
	}

	return models.RoleAdmin, nil
}
