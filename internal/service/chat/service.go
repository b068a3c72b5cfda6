package chat

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/eino/components/prompt"
	"github.com/cloudwego/eino/schema"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/folio/backend/internal/analysis/intent"
	"github.com/zhouzirui/folio/backend/internal/metrics"
	"github.com/zhouzirui/folio/backend/internal/model/chat"
	"github.com/zhouzirui/folio/backend/internal/store"
)

// GenericPersona voices replies when a message names a mode that does not exist.
const GenericPersona = "I'm an AI assistant."

// Exchange pairs a stored inbound message with the bot reply it produced.
type Exchange struct {
	UserMessage chat.Message  `json:"userMessage"`
	BotResponse *chat.Message `json:"botResponse"`
}

// Service stores chat messages and answers user-authored ones with canned
// replies.
type Service struct {
	store     store.Store
	templates map[intent.Intent]prompt.ChatTemplate
	now       func() time.Time
}

// NewService builds a Service backed by st.
func NewService(st store.Store) *Service {
	templates := make(map[intent.Intent]prompt.ChatTemplate, len(replyTemplates))
	for in, text := range replyTemplates {
		templates[in] = prompt.FromMessages(schema.FString, schema.AssistantMessage(text, nil))
	}
	return &Service{
		store:     st,
		templates: templates,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// Send stores msg and, when it was written by the visitor, generates and
// stores the bot reply.
func (s *Service) Send(ctx context.Context, msg chat.NewMessage) (Exchange, error) {
	stored := s.store.CreateChatMessage(ctx, msg)
	if stored.IsBot {
		return Exchange{UserMessage: stored}, nil
	}

	reply, err := s.Reply(ctx, stored)
	if err != nil {
		return Exchange{}, err
	}
	return Exchange{UserMessage: stored, BotResponse: &reply}, nil
}

// Reply selects a canned answer for userMsg and stores it as a bot message in
// the same session.
func (s *Service) Reply(ctx context.Context, userMsg chat.Message) (chat.Message, error) {
	persona := GenericPersona
	fallback := true
	if mode, ok := s.store.GetChatModeByName(ctx, userMsg.Mode); ok {
		persona = mode.Persona
		fallback = false
	}

	matched := intent.Classify(userMsg.Content)
	text, err := s.render(ctx, matched, persona, userMsg.Mode)
	if err != nil {
		return chat.Message{}, fmt.Errorf("render %s reply: %w", matched, err)
	}

	reply := s.store.CreateChatMessage(ctx, chat.NewMessage{
		SessionID: userMsg.SessionID,
		Content:   text,
		IsBot:     true,
		Mode:      userMsg.Mode,
		Metadata: map[string]any{
			"generatedAt":     s.now().Format(time.RFC3339Nano),
			"intent":          string(matched),
			"personaFallback": fallback,
		},
	})
	metrics.RecordChatReply(string(matched))

	log.Debug().
		Str("session_id", userMsg.SessionID).
		Str("mode", userMsg.Mode).
		Str("intent", string(matched)).
		Bool("persona_fallback", fallback).
		Msg("chat reply generated")
	return reply, nil
}

func (s *Service) render(ctx context.Context, in intent.Intent, persona, mode string) (string, error) {
	tpl, ok := s.templates[in]
	if !ok {
		tpl = s.templates[intent.Fallback]
	}

	msgs, err := tpl.Format(ctx, map[string]any{
		"persona": persona,
		"mode":    mode,
	})
	if err != nil {
		return "", err
	}
	if len(msgs) == 0 {
		return "", fmt.Errorf("template produced no message")
	}
	return msgs[0].Content, nil
}
