package contact

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/folio/backend/internal/metrics"
	"github.com/zhouzirui/folio/backend/internal/model/contact"
	"github.com/zhouzirui/folio/backend/internal/store"
	"github.com/zhouzirui/folio/backend/internal/validate"
	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// Handler 联系表单处理器
type Handler struct {
	store store.Store
}

// New 创建联系表单处理器
func New(st store.Store) *Handler {
	return &Handler{store: st}
}

// RegisterRoutes 注册联系表单路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.With(middleware.RequestSize(utils.MaxBodyBytes)).Post("/contact", h.handleCreate)
}

type createResponse struct {
	Message string          `json:"message"`
	Data    contact.Message `json:"data"`
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var payload contact.NewMessage
	if !utils.DecodeJSON(w, r, &payload) {
		return
	}

	if err := validate.ContactMessage(payload.Name, payload.Email, payload.Subject, payload.Message); err != nil {
		utils.RespondError(w, http.StatusBadRequest, err.Error())
		return
	}

	saved := h.store.CreateContactMessage(r.Context(), payload)
	metrics.RecordContactMessage()
	log.Info().Int64("contact_id", saved.ID).Str("subject", saved.Subject).Msg("contact message stored")

	utils.RespondJSON(w, http.StatusCreated, createResponse{
		Message: "Message sent successfully",
		Data:    saved,
	})
}
