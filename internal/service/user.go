package service

import (
	"context"
	"strings"

	"carrental-backoffice/internal/domain"
	"carrental-backoffice/internal/repository"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetAllUsers(ctx context.Context, filter domain.UserFilter) ([]domain.User, error) {
	if filter.Role != "" {
		filter.Role = strings.ToUpper(filter.Role)
	}
	if filter.Email != "" {
		filter.Email = strings.ToLower(filter.Email)
	}
	return s.userRepo.List(ctx, filter)
}

func (s *userService) GetUser(ctx context.Context, id int32) (*domain.User, error) {
	return s.userRepo.GetByID(ctx, id)
}
