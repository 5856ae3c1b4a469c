package notification

import (
	"context"
	"log/slog"

	"gahana/config"
	"gahana/internal/domain/service"
	"gahana/internal/errors"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

// topicSender is the slice of *messaging.Client the notifier uses.
type topicSender interface {
	Send(ctx context.Context, message *messaging.Message) (string, error)
}

type firebaseNotifier struct {
	client topicSender
	logger *slog.Logger
}

// NewFirebaseNotifier creates a push notifier backed by Firebase Cloud Messaging.
func NewFirebaseNotifier(ctx context.Context, cfg *config.FirebaseConfig, logger *slog.Logger) (service.PushNotifier, error) {
	var opts []option.ClientOption
	if cfg.CredentialsPath != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsPath))
	}

	var appCfg *firebase.Config
	if cfg.ProjectID != "" {
		appCfg = &firebase.Config{ProjectID: cfg.ProjectID}
	}

	app, err := firebase.NewApp(ctx, appCfg, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize Firebase app")
	}

	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to get messaging client")
	}

	return &firebaseNotifier{client: client, logger: logger}, nil
}

// SendToTopic sends a notification to every device subscribed to topic.
func (s *firebaseNotifier) SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error {
	if topic == "" {
		return errors.New("topic is required")
	}

	messageID, err := s.client.Send(ctx, &messaging.Message{
		Topic: topic,
		Notification: &messaging.Notification{
			Title: title,
			Body:  body,
		},
		Data: data,
	})
	if err != nil {
		return errors.Wrap(err, "failed to send notification")
	}

	s.logger.Debug("Push notification sent",
		slog.String("topic", topic),
		slog.String("message_id", messageID),
	)

	return nil
}

// noopNotifier is used when Firebase is not configured.
type noopNotifier struct {
	logger *slog.Logger
}

// NewNoopNotifier returns a notifier that only logs.
func NewNoopNotifier(logger *slog.Logger) service.PushNotifier {
	return &noopNotifier{logger: logger}
}

func (n *noopNotifier) SendToTopic(_ context.Context, topic, title, _ string, _ map[string]string) error {
	n.logger.Debug("Push notifications disabled, skipping",
		slog.String("topic", topic),
		slog.String("title", title),
	)

	return nil
}
