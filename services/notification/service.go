package notification

import (
	"context"
	"fmt"

	"slotwise/models"
	"slotwise/utils"

	"firebase.google.com/go/v4/messaging"
	"go.uber.org/zap"
)

// DefaultNotificationService delivers by email and, when the recipient
// registered a device token, additionally by FCM push.
type DefaultNotificationService struct {
	Email EmailSender
}

func NewDefaultNotificationService(email EmailSender) (*DefaultNotificationService, error) {
	if email == nil {
		return nil, fmt.Errorf("notification service initialization error: email sender is nil")
	}
	return &DefaultNotificationService{Email: email}, nil
}

func (s *DefaultNotificationService) Notify(ctx context.Context, kind string, rcpt Recipient, data models.NotificationData) error {
	logger := utils.GetLogger()

	subject, body, err := renderTemplate(kind, data)
	if err != nil {
		return err
	}

	if rcpt.Email == "" {
		return fmt.Errorf("notify %s: recipient has no email address", kind)
	}
	if err := s.Email.Send(rcpt.Email, subject, body); err != nil {
		return fmt.Errorf("notify %s: email to %s failed: %w", kind, rcpt.Email, err)
	}

	// Push is best-effort on top of email.
	if rcpt.FCMToken != "" && utils.FCMClient != nil {
		msg := &messaging.Message{
			Token: rcpt.FCMToken,
			Notification: &messaging.Notification{
				Title: subject,
				Body:  body,
			},
			Data: map[string]string{"kind": kind},
		}
		if _, err := utils.FCMClient.Send(ctx, msg); err != nil {
			logger.Warn("push delivery failed", zap.String("kind", kind), zap.Error(err))
		}
	}

	return nil
}
