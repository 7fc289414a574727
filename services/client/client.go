package client

import (
	"context"
	"fmt"

	clientRepo "rentora/database/repository/client"
	"rentora/models"

	"github.com/google/uuid"
)

// ClientService manages the renting parties.
type ClientService interface {
	List(ctx context.Context) ([]models.Client, error)
	Get(ctx context.Context, id string) (*models.Client, error)
	Create(ctx context.Context, createdBy string, client *models.Client) (*models.Client, error)
	Update(ctx context.Context, client *models.Client) (*models.Client, error)
	Delete(ctx context.Context, id string) error
}

// DefaultClientService implements ClientService.
type DefaultClientService struct {
	Repo clientRepo.ClientRepository
}

func (s *DefaultClientService) List(ctx context.Context) ([]models.Client, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultClientService) Get(ctx context.Context, id string) (*models.Client, error) {
	client, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if client == nil {
		return nil, fmt.Errorf("client %s not found", id)
	}
	return client, nil
}

func (s *DefaultClientService) Create(ctx context.Context, createdBy string, client *models.Client) (*models.Client, error) {
	if client.ID == "" {
		client.ID = uuid.New().String()
	}
	client.CreatedBy = createdBy
	if err := s.Repo.Create(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *DefaultClientService) Update(ctx context.Context, client *models.Client) (*models.Client, error) {
	existing, err := s.Repo.GetByID(ctx, client.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("client %s not found", client.ID)
	}
	client.CreatedBy = existing.CreatedBy
	client.CreatedAt = existing.CreatedAt
	if err := s.Repo.Update(ctx, client); err != nil {
		return nil, err
	}
	return client, nil
}

func (s *DefaultClientService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
