package messaging

import (
	"context"
	"testing"

	"marketgo/internal/dataservice"
	"marketgo/internal/marketerrors"

	"github.com/stretchr/testify/require"
)

func TestService_SendMessage(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	db := dataservice.NewMemoryStore()
	svc := NewService(db)

	message, err := svc.SendMessage(ctx, "alice", "bob", "is the lamp still available?")
	require.NoError(t, err)
	require.NotEmpty(t, message.MessageID)
	require.Equal(t, "alice", message.SenderID)
	require.Equal(t, "bob", message.RecipientID)

	// Recipient gets a notification
	notifications, err := svc.Notifications(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, notifications, 1)
	require.False(t, notifications[0].Read)
}

func TestService_SendMessage_Validation(t *testing.T) {
	t.Parallel()
	svc := NewService(dataservice.NewMemoryStore())

	tests := []struct {
		name      string
		sender    string
		recipient string
		body      string
	}{
		{name: "missing_sender", sender: "", recipient: "bob", body: "hi"},
		{name: "missing_recipient", sender: "alice", recipient: "", body: "hi"},
		{name: "empty_body", sender: "alice", recipient: "bob", body: ""},
		{name: "self_message", sender: "alice", recipient: "alice", body: "hi"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.SendMessage(context.Background(), tc.sender, tc.recipient, tc.body)
			require.ErrorIs(t, err, marketerrors.ErrInvalidInput)
		})
	}
}

func TestService_Conversation_MergesBothDirectionsNewestFirst(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(dataservice.NewMemoryStore())

	_, err := svc.SendMessage(ctx, "alice", "bob", "first")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "bob", "alice", "second")
	require.NoError(t, err)
	_, err = svc.SendMessage(ctx, "alice", "bob", "third")
	require.NoError(t, err)
	// Unrelated chatter must not leak into the conversation
	_, err = svc.SendMessage(ctx, "alice", "carol", "other thread")
	require.NoError(t, err)

	messages, err := svc.Conversation(ctx, "alice", "bob")
	require.NoError(t, err)
	require.Len(t, messages, 3)
	for i := 1; i < len(messages); i++ {
		require.False(t, messages[i].CreatedAt.After(messages[i-1].CreatedAt), "newest first")
	}
}

func TestService_MarkRead(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	svc := NewService(dataservice.NewMemoryStore())

	_, err := svc.SendMessage(ctx, "alice", "bob", "hello")
	require.NoError(t, err)

	notifications, err := svc.Notifications(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, notifications, 1)

	marked, err := svc.MarkRead(ctx, "bob", notifications[0].NotificationID)
	require.NoError(t, err)
	require.True(t, marked)

	notifications, err = svc.Notifications(ctx, "bob")
	require.NoError(t, err)
	require.True(t, notifications[0].Read)

	// Another user cannot mark someone else's notification
	marked, err = svc.MarkRead(ctx, "alice", notifications[0].NotificationID)
	require.NoError(t, err)
	require.False(t, marked)

	marked, err = svc.MarkRead(ctx, "bob", "missing")
	require.NoError(t, err)
	require.False(t, marked)
}
