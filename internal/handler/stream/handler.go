package stream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/folio/backend/internal/model/chat"
	chatService "github.com/zhouzirui/folio/backend/internal/service/chat"
	"github.com/zhouzirui/folio/backend/internal/store"
	"github.com/zhouzirui/folio/backend/internal/validate"
	"github.com/zhouzirui/folio/backend/pkg/utils"
)

var errStreamingUnsupported = errors.New("streaming unsupported")

// Handler replays bot replies word by word over Server-Sent Events.
type Handler struct {
	chatSvc *chatService.Service
	store   store.Store
}

// New creates a new stream handler
func New(chatSvc *chatService.Service, st store.Store) *Handler {
	return &Handler{chatSvc: chatSvc, store: st}
}

// RegisterRoutes mounts the SSE endpoint
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/stream/{sessionID}", h.handleStream)
}

// Chunk is the data of a "chunk" event.
type Chunk struct {
	Content string `json:"content"`
	Index   int    `json:"index"`
}

func (h *Handler) handleStream(w http.ResponseWriter, r *http.Request) {
	sessionID := chi.URLParam(r, "sessionID")
	content := r.URL.Query().Get("message")
	mode := r.URL.Query().Get("mode")
	if mode == "" {
		if def, ok := h.store.GetDefaultChatMode(r.Context()); ok {
			mode = def.Name
		}
	}

	if err := validate.ChatMessage(sessionID, content, mode); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.HandleStreamRequest(r.Context(), w, chat.NewMessage{
		SessionID: sessionID,
		Content:   content,
		Mode:      mode,
	}); err != nil {
		if errors.Is(err, errStreamingUnsupported) {
			utils.RespondError(w, http.StatusInternalServerError, "Streaming unsupported")
			return
		}
		log.Error().Stack().Err(err).Str("session_id", sessionID).Msg("stream request failed")
	}
}

// HandleStreamRequest stores msg, then streams the generated reply. Headers are
// written before the reply is generated, so later failures are reported as an
// "error" event.
func (h *Handler) HandleStreamRequest(ctx context.Context, w http.ResponseWriter, msg chat.NewMessage) error {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return errStreamingUnsupported
	}

	utils.SetupSSEHeaders(w)
	w.WriteHeader(http.StatusOK)

	exchange, err := h.chatSvc.Send(ctx, msg)
	if err != nil {
		_ = utils.SendSSEEvent(w, flusher, "error", map[string]string{"message": "Failed to process chat message"})
		return fmt.Errorf("send chat message: %w", err)
	}

	if err := utils.SendSSEEvent(w, flusher, "message", exchange.UserMessage); err != nil {
		return err
	}
	if exchange.BotResponse == nil {
		return nil
	}

	for i, word := range strings.Fields(exchange.BotResponse.Content) {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		if i > 0 {
			word = " " + word
		}
		if err := utils.SendSSEEvent(w, flusher, "chunk", Chunk{Content: word, Index: i}); err != nil {
			return err
		}
	}

	return utils.SendSSEEvent(w, flusher, "done", exchange.BotResponse)
}
