package session_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/mcp-bridge/mcp-bridge/providers"
	"github.com/mcp-bridge/mcp-bridge/session"
	"github.com/mcp-bridge/mcp-bridge/tests/mocks"
)

func TestSessionHistoryIsAppendOnly(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := session.New(mocks.NewMockProvider(ctrl), "You are a helpful assistant.")
	assert.NotEmpty(t, sess.ID())
	assert.Equal(t, 1, sess.Len())

	require.NoError(t, sess.Append(providers.Message{Role: providers.MessageRoleUser, Content: "hello"}))
	require.NoError(t, sess.Append(providers.Message{Role: providers.MessageRoleAssistant, Content: "hi"}))

	history := sess.History()
	require.Len(t, history, 3)
	assert.Equal(t, providers.MessageRoleSystem, history[0].Role)
	assert.Equal(t, "hello", history[1].Content)
	assert.Equal(t, "hi", history[2].Content)

	// Mutating the returned slice must not leak into the session.
	history[0].Content = "tampered"
	assert.Equal(t, "You are a helpful assistant.", sess.History()[0].Content)
}

func TestSessionRejectsMessageWithoutRole(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := session.New(mocks.NewMockProvider(ctrl), "")
	err := sess.Append(providers.Message{Content: "no role"})
	assert.ErrorIs(t, err, session.ErrInvalidMessage)
	assert.Equal(t, 0, sess.Len())
}

func TestSessionWithoutSystemPrompt(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := session.New(mocks.NewMockProvider(ctrl), "")
	assert.Equal(t, 0, sess.Len())
}

func TestSessionTurnCounter(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	sess := session.New(mocks.NewMockProvider(ctrl), "")
	assert.Equal(t, 0, sess.Turns())
	assert.Equal(t, 1, sess.BeginTurn())
	assert.Equal(t, 2, sess.BeginTurn())
	assert.Equal(t, 2, sess.Turns())
}

func TestStore(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := session.NewStore()
	sess := session.New(mocks.NewMockProvider(ctrl), "")

	_, err := store.Get(sess.ID())
	assert.ErrorIs(t, err, session.ErrNotFound)

	store.Add(sess)
	got, err := store.Get(sess.ID())
	require.NoError(t, err)
	assert.Same(t, sess, got)

	store.Remove(sess.ID())
	_, err = store.Get(sess.ID())
	assert.ErrorIs(t, err, session.ErrNotFound)
}
