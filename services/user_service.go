// Package services holds the business rules between the HTTP controllers
// and the repositories.
package services

import (
	"context"
	"errors"
	"time"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/repositories"
)

// ErrForbidden is returned when an authenticated caller lacks the right to
// perform the operation.
var ErrForbidden = errors.New("operation not permitted")

// UserService is the business contract for user accounts.
type UserService interface {
	// Register creates the account on first call and reports existed=true
	// without writing anything when the email is already registered.
	Register(ctx context.Context, req dto.RegisterUserRequest) (result *dto.InsertResult, existed bool, err error)
	List(ctx context.Context, email string) ([]domain.User, error)
	IsAdmin(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, email string, req dto.UpdateUserRequest) (*dto.UpdateResult, error)
	Delete(ctx context.Context, email string) (*dto.DeleteResult, error)
}

type userService struct {
	repo repositories.UserRepository
}

// NewUserService creates the service.
func NewUserService(repo repositories.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) Register(ctx context.Context, req dto.RegisterUserRequest) (*dto.InsertResult, bool, error) {
	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil && !errors.Is(err, repositories.ErrNotFound) {
		return nil, false, err
	}
	if existing != nil {
		return nil, true, nil
	}

	user := &domain.User{
		Email:     req.Email,
		Name:      req.Name,
		Role:      domain.RoleUser,
		CreatedAt: time.Now().UTC(),
	}
	id, err := s.repo.Insert(ctx, user)
	if err != nil {
		return nil, false, err
	}
	return &dto.InsertResult{InsertedID: id}, false, nil
}

func (s *userService) List(ctx context.Context, email string) ([]domain.User, error) {
	return s.repo.List(ctx, email)
}

// IsAdmin reports whether a stored user with this email holds the admin
// role. An unknown email is simply not an admin.
func (s *userService) IsAdmin(ctx context.Context, email string) (bool, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if errors.Is(err, repositories.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return user.IsAdmin(), nil
}

func (s *userService) Update(ctx context.Context, email string, req dto.UpdateUserRequest) (*dto.UpdateResult, error) {
	return s.repo.UpdateByEmail(ctx, email, req)
}

func (s *userService) Delete(ctx context.Context, email string) (*dto.DeleteResult, error) {
	count, err := s.repo.DeleteByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return &dto.DeleteResult{DeletedCount: count}, nil
}
