package property

import (
	"context"
	"fmt"

	propertyRepo "rentora/database/repository/property"
	"rentora/models"

	"github.com/google/uuid"
)

// PropertyService manages the rental unit catalogue.
type PropertyService interface {
	List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error)
	Get(ctx context.Context, id string) (*models.Property, error)
	Create(ctx context.Context, createdBy string, property *models.Property) (*models.Property, error)
	Update(ctx context.Context, property *models.Property) (*models.Property, error)
	Delete(ctx context.Context, id string) error
}

// DefaultPropertyService implements PropertyService.
type DefaultPropertyService struct {
	Repo propertyRepo.PropertyRepository
}

func (s *DefaultPropertyService) List(ctx context.Context, filter models.PropertyFilter) ([]models.Property, error) {
	return s.Repo.GetAll(ctx, filter)
}

func (s *DefaultPropertyService) Get(ctx context.Context, id string) (*models.Property, error) {
	property, err := s.Repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if property == nil {
		return nil, fmt.Errorf("property %s not found", id)
	}
	return property, nil
}

func (s *DefaultPropertyService) Create(ctx context.Context, createdBy string, property *models.Property) (*models.Property, error) {
	if property.ID == "" {
		property.ID = uuid.New().String()
	}
	if property.Status == "" {
		property.Status = models.PropertyStatusAvailable
	}
	property.CreatedBy = createdBy
	if err := s.Repo.Create(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *DefaultPropertyService) Update(ctx context.Context, property *models.Property) (*models.Property, error) {
	existing, err := s.Repo.GetByID(ctx, property.ID)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("property %s not found", property.ID)
	}
	property.CreatedBy = existing.CreatedBy
	property.CreatedAt = existing.CreatedAt
	if err := s.Repo.Update(ctx, property); err != nil {
		return nil, err
	}
	return property, nil
}

func (s *DefaultPropertyService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
