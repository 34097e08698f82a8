package messaging

import (
	"context"
	"fmt"
	"sort"
	"time"

	"marketgo/internal/dataservice"
	"marketgo/internal/marketerrors"
	"marketgo/internal/models"
	"marketgo/utils"
)

// Service handles user-to-user messages and in-app notifications
type Service struct {
	db dataservice.Store
}

// NewService creates a new messaging service instance
func NewService(db dataservice.Store) *Service {
	return &Service{db: db}
}

// SendMessage records a message and raises a notification for the recipient
func (s *Service) SendMessage(ctx context.Context, senderID, recipientID, body string) (models.Message, error) {
	if senderID == "" || recipientID == "" {
		return models.Message{}, fmt.Errorf("service: %w - missing sender or recipient", marketerrors.ErrInvalidInput)
	}
	if body == "" {
		return models.Message{}, fmt.Errorf("service: %w - empty message body", marketerrors.ErrInvalidInput)
	}
	if senderID == recipientID {
		return models.Message{}, fmt.Errorf("service: %w - cannot message yourself", marketerrors.ErrInvalidInput)
	}

	message := models.Message{
		MessageID:   utils.GenerateID(),
		SenderID:    senderID,
		RecipientID: recipientID,
		Body:        body,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.db.Insert(ctx, dataservice.TableMessages, messageToRow(message)); err != nil {
		return models.Message{}, fmt.Errorf("service: failed to send message: %w", err)
	}

	notification := dataservice.Row{
		"notification_id": utils.GenerateID(),
		"user_id":         recipientID,
		"message":         "You have a new message",
		"read":            false,
		"created_at":      message.CreatedAt,
	}
	if err := s.db.Insert(ctx, dataservice.TableNotifications, notification); err != nil {
		utils.Warn("messaging: failed to insert message notification", map[string]any{
			"recipient_id": recipientID, "error": err.Error(),
		})
	}

	return message, nil
}

// Conversation returns the messages exchanged between two users, newest
// first. The data service filters on equality only, so both directions
// are fetched and merged here.
func (s *Service) Conversation(ctx context.Context, userID, otherUserID string) ([]models.Message, error) {
	if userID == "" || otherUserID == "" {
		return nil, fmt.Errorf("service: %w - missing user IDs", marketerrors.ErrInvalidInput)
	}

	sent, err := s.db.Select(ctx, dataservice.TableMessages,
		dataservice.Filter{"sender_id": userID, "recipient_id": otherUserID}, nil)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load conversation: %w", err)
	}
	received, err := s.db.Select(ctx, dataservice.TableMessages,
		dataservice.Filter{"sender_id": otherUserID, "recipient_id": userID}, nil)
	if err != nil {
		return nil, fmt.Errorf("service: failed to load conversation: %w", err)
	}

	messages := make([]models.Message, 0, len(sent)+len(received))
	for _, row := range append(sent, received...) {
		messages = append(messages, rowToMessage(row))
	}
	sort.Slice(messages, func(i, j int) bool {
		return messages[i].CreatedAt.After(messages[j].CreatedAt)
	})
	return messages, nil
}

// Notifications returns a user's notifications, newest first
func (s *Service) Notifications(ctx context.Context, userID string) ([]models.Notification, error) {
	if userID == "" {
		return nil, fmt.Errorf("service: %w - empty user ID", marketerrors.ErrInvalidInput)
	}

	rows, err := s.db.Select(ctx, dataservice.TableNotifications, dataservice.Filter{"user_id": userID},
		&dataservice.Order{Column: "created_at", Descending: true})
	if err != nil {
		return nil, fmt.Errorf("service: failed to list notifications for %s: %w", userID, err)
	}

	notifications := make([]models.Notification, 0, len(rows))
	for _, row := range rows {
		notifications = append(notifications, models.Notification{
			NotificationID: row.String("notification_id"),
			UserID:         row.String("user_id"),
			Message:        row.String("message"),
			Read:           row.Bool("read"),
			CreatedAt:      row.Time("created_at"),
		})
	}
	return notifications, nil
}

// MarkRead flags one of the user's notifications as read. Returns false
// when no matching notification exists.
func (s *Service) MarkRead(ctx context.Context, userID, notificationID string) (bool, error) {
	affected, err := s.db.Update(ctx, dataservice.TableNotifications,
		dataservice.Filter{"notification_id": notificationID, "user_id": userID},
		dataservice.Row{"read": true})
	if err != nil {
		return false, fmt.Errorf("service: failed to mark notification %s read: %w", notificationID, err)
	}
	return affected > 0, nil
}

func messageToRow(message models.Message) dataservice.Row {
	return dataservice.Row{
		"message_id":   message.MessageID,
		"sender_id":    message.SenderID,
		"recipient_id": message.RecipientID,
		"body":         message.Body,
		"created_at":   message.CreatedAt,
	}
}

func rowToMessage(row dataservice.Row) models.Message {
	return models.Message{
		MessageID:   row.String("message_id"),
		SenderID:    row.String("sender_id"),
		RecipientID: row.String("recipient_id"),
		Body:        row.String("body"),
		CreatedAt:   row.Time("created_at"),
	}
}
