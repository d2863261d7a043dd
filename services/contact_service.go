package services

import (
	"context"
	"time"

	"homenest-api/domain"
	"homenest-api/dto"
	"homenest-api/repositories"
)

// ContactService is the business contract for contact messages.
type ContactService interface {
	Create(ctx context.Context, req dto.CreateContactRequest) (*dto.InsertResult, error)
	ListAll(ctx context.Context) ([]domain.ContactMessage, error)
}

type contactService struct {
	repo repositories.ContactRepository
}

// NewContactService creates the service.
func NewContactService(repo repositories.ContactRepository) ContactService {
	return &contactService{repo: repo}
}

func (s *contactService) Create(ctx context.Context, req dto.CreateContactRequest) (*dto.InsertResult, error) {
	message := &domain.ContactMessage{
		Name:      req.Name,
		Email:     req.Email,
		Message:   req.Message,
		Status:    domain.ContactMessageStatusNew,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, message)
	if err != nil {
		return nil, err
	}
	return &dto.InsertResult{InsertedID: id}, nil
}

func (s *contactService) ListAll(ctx context.Context) ([]domain.ContactMessage, error) {
	return s.repo.ListAll(ctx)
}
