package chat_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhouzirui/folio/backend/internal/model/chat"
	chatservice "github.com/zhouzirui/folio/backend/internal/service/chat"
	"github.com/zhouzirui/folio/backend/internal/store"
)

func newService() (*chatservice.Service, *store.MemoryStore) {
	st := store.NewMemoryStore(store.WithModes(chat.Seed()))
	return chatservice.NewService(st), st
}

func TestSendStoresUserMessageAndReply(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	ex, err := svc.Send(ctx, chat.NewMessage{SessionID: "s1", Content: "hi", Mode: "Portfolio"})
	require.NoError(t, err)
	require.NotNil(t, ex.BotResponse)

	assert.False(t, bool(ex.UserMessage.IsBot))
	assert.True(t, bool(ex.BotResponse.IsBot))
	assert.Equal(t, "s1", ex.BotResponse.SessionID)
	assert.Equal(t, "Portfolio", ex.BotResponse.Mode)
	assert.Greater(t, ex.BotResponse.ID, ex.UserMessage.ID)

	portfolio, ok := st.GetChatModeByName(ctx, "portfolio")
	require.True(t, ok)
	assert.Contains(t, ex.BotResponse.Content, portfolio.Persona)
	assert.Equal(t, "greeting", ex.BotResponse.Metadata["intent"])
	assert.Equal(t, false, ex.BotResponse.Metadata["personaFallback"])
	assert.NotEmpty(t, ex.BotResponse.Metadata["generatedAt"])

	assert.Len(t, st.ListChatMessages(ctx, "s1"), 2)
}

func TestSendUnknownModeUsesGenericPersona(t *testing.T) {
	svc, _ := newService()

	ex, err := svc.Send(context.Background(), chat.NewMessage{
		SessionID: "s2",
		Content:   "what is the weather like",
		Mode:      "nonexistent-mode-xyz",
	})
	require.NoError(t, err)
	require.NotNil(t, ex.BotResponse)

	assert.True(t, strings.HasPrefix(ex.BotResponse.Content, chatservice.GenericPersona))
	assert.Equal(t, "nonexistent-mode-xyz", ex.BotResponse.Mode)
	assert.Equal(t, true, ex.BotResponse.Metadata["personaFallback"])
	assert.Equal(t, "fallback", ex.BotResponse.Metadata["intent"])
}

func TestSendBotAuthoredMessageGetsNoReply(t *testing.T) {
	svc, st := newService()
	ctx := context.Background()

	ex, err := svc.Send(ctx, chat.NewMessage{SessionID: "s3", Content: "welcome", IsBot: true, Mode: "Portfolio"})
	require.NoError(t, err)
	assert.Nil(t, ex.BotResponse)
	assert.Len(t, st.ListChatMessages(ctx, "s3"), 1)
}

func TestReplyPriorityGreetingOverHelp(t *testing.T) {
	svc, _ := newService()

	ex, err := svc.Send(context.Background(), chat.NewMessage{
		SessionID: "s4",
		Content:   "Hello, can you help me?",
		Mode:      "Technical",
	})
	require.NoError(t, err)
	require.NotNil(t, ex.BotResponse)
	assert.Equal(t, "greeting", ex.BotResponse.Metadata["intent"])
	assert.True(t, strings.HasPrefix(ex.BotResponse.Content, "Hello! "))
}
