package notification

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"gahana/internal/errors"

	"firebase.google.com/go/v4/messaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSender struct {
	sent []*messaging.Message
	err  error
}

func (f *fakeSender) Send(_ context.Context, message *messaging.Message) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.sent = append(f.sent, message)

	return "projects/p/messages/1", nil
}

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFirebaseNotifier_SendToTopic(t *testing.T) {
	sender := &fakeSender{}
	notifier := &firebaseNotifier{client: sender, logger: newDiscardLogger()}

	err := notifier.SendToTopic(context.Background(), "metal-prices", "Gold 24K", "Rs 15,250.50 per gram",
		map[string]string{"metal_type": "gold"})
	require.NoError(t, err)

	require.Len(t, sender.sent, 1)
	msg := sender.sent[0]
	assert.Equal(t, "metal-prices", msg.Topic)
	assert.Empty(t, msg.Token)
	assert.Equal(t, "Gold 24K", msg.Notification.Title)
	assert.Equal(t, "gold", msg.Data["metal_type"])
}

func TestFirebaseNotifier_Errors(t *testing.T) {
	notifier := &firebaseNotifier{client: &fakeSender{err: errors.New("quota exceeded")}, logger: newDiscardLogger()}

	err := notifier.SendToTopic(context.Background(), "metal-prices", "t", "b", nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")

	assert.Error(t, notifier.SendToTopic(context.Background(), "", "t", "b", nil))
}

func TestNoopNotifier(t *testing.T) {
	assert.NoError(t, NewNoopNotifier(newDiscardLogger()).SendToTopic(context.Background(), "metal-prices", "t", "b", nil))
}
