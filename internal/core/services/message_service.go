package services

import (
	"context"
	"errors"

	"clinicdesk/internal/adapters/persistence/models"
	"clinicdesk/internal/adapters/persistence/repositories"

	"gorm.io/gorm"
)

// Message service errors
var (
	ErrMessageNotFound = errors.New("message not found")
)

// MessageService handles the per-user inbox
type MessageService struct {
	messageRepo repositories.MessageRepository
}

// NewMessageService creates a new message service
func NewMessageService(messageRepo repositories.MessageRepository) *MessageService {
	return &MessageService{messageRepo: messageRepo}
}

// Inbox lists the caller's messages, newest first
func (s *MessageService) Inbox(ctx context.Context, userID uint) ([]*models.Message, error) {
	return s.messageRepo.ListByUserID(ctx, userID)
}

// UnreadCount returns the caller's unread message count
func (s *MessageService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.messageRepo.CountUnreadByUserID(ctx, userID)
}

// Detail returns one message and marks it read. Only the recipient can open
// a message, anyone else gets not found.
func (s *MessageService) Detail(ctx context.Context, userID, messageID uint) (*models.Message, error) {
	message, err := s.messageRepo.GetByID(ctx, messageID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrMessageNotFound
		}
		return nil, err
	}

	if message.UserID != userID {
		return nil, ErrMessageNotFound
	}

	if !message.IsRead {
		if err := s.messageRepo.MarkRead(ctx, message.ID); err != nil {
			return nil, err
		}
		message.IsRead = true
	}

	return message, nil
}

// MarkRead flags one of the caller's messages as read. The same recipient
// check applies as when opening it.
func (s *MessageService) MarkRead(ctx context.Context, userID, messageID uint) error {
	_, err := s.Detail(ctx, userID, messageID)
	return err
}
