package service

import "context"

// PushNotifier sends push notifications to a topic that devices subscribe to.
type PushNotifier interface {
	SendToTopic(ctx context.Context, topic, title, body string, data map[string]string) error
}
