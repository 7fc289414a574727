package message

import (
	"context"
	"strings"

	messageRepo "rentora/database/repository/message"
	"rentora/models"

	"github.com/google/uuid"
)

// MessageService handles inbound inquiries from the marketing site.
type MessageService interface {
	Submit(ctx context.Context, message *models.Message) (*models.Message, error)
	List(ctx context.Context) ([]models.Message, error)
	MarkRead(ctx context.Context, id string) error
	Delete(ctx context.Context, id string) error
}

// DefaultMessageService implements MessageService.
type DefaultMessageService struct {
	Repo messageRepo.MessageRepository
}

func (s *DefaultMessageService) Submit(ctx context.Context, message *models.Message) (*models.Message, error) {
	message.ID = uuid.New().String()
	message.Read = false
	message.SenderName = strings.TrimSpace(message.SenderName)
	message.SenderEmail = strings.TrimSpace(message.SenderEmail)
	if err := s.Repo.Create(ctx, message); err != nil {
		return nil, err
	}
	return message, nil
}

func (s *DefaultMessageService) List(ctx context.Context) ([]models.Message, error) {
	return s.Repo.GetAll(ctx)
}

func (s *DefaultMessageService) MarkRead(ctx context.Context, id string) error {
	return s.Repo.MarkRead(ctx, id)
}

func (s *DefaultMessageService) Delete(ctx context.Context, id string) error {
	return s.Repo.Delete(ctx, id)
}
