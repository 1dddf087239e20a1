package service

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"

	"wheelhub-backend/internal/logger"
)

type messagingClient interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type fcmSender struct {
	client messagingClient
}

// NewFCMSender builds a Firebase Cloud Messaging sender from a service
// account credentials file.
func NewFCMSender(ctx context.Context, credentialsFile string) (PushSender, error) {
	app, err := firebase.NewApp(ctx, nil, option.WithCredentialsFile(credentialsFile))
	if err != nil {
		return nil, fmt.Errorf("init firebase app: %w", err)
	}
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("init firebase messaging: %w", err)
	}
	return &fcmSender{client: client}, nil
}

func (s *fcmSender) SendPush(ctx context.Context, deviceToken, title, body string, data map[string]string) error {
	msg := &messaging.Message{
		Token: deviceToken,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	}
	logger.ExternalServiceCall("fcm", "send")
	id, err := s.client.Send(ctx, msg)
	logger.ExternalServiceResult("fcm", "send", err, "message_id", id)
	if err != nil {
		return fmt.Errorf("send push: %w", err)
	}
	return nil
}
