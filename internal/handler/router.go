package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/zhouzirui/folio/backend/internal/config"
	"github.com/zhouzirui/folio/backend/internal/handler/chat"
	"github.com/zhouzirui/folio/backend/internal/handler/contact"
	"github.com/zhouzirui/folio/backend/internal/handler/cv"
	"github.com/zhouzirui/folio/backend/internal/handler/stream"
	"github.com/zhouzirui/folio/backend/internal/metrics"
	middlewarePkg "github.com/zhouzirui/folio/backend/internal/middleware"
	chatService "github.com/zhouzirui/folio/backend/internal/service/chat"
	"github.com/zhouzirui/folio/backend/internal/store"
	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// NewRouter wires HTTP routes to core services.
func NewRouter(cfg *config.Config, st store.Store, chatSvc *chatService.Service) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middlewarePkg.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.StripSlashes)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Authorization", "X-Request-ID"},
	}))

	contactHandler := contact.New(st)
	cvHandler := cv.New(cfg.CV)
	chatHandler := chat.New(chatSvc, st)
	wsHandler := chat.NewWebSocketHandler(chatSvc)
	streamHandler := stream.New(chatSvc, st)

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
			utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
		})

		contactHandler.RegisterRoutes(api)
		cvHandler.RegisterRoutes(api)

		api.Route("/chat", func(c chi.Router) {
			chatHandler.RegisterRoutes(c)
			wsHandler.RegisterWebSocketRoutes(c)
			streamHandler.RegisterRoutes(c)
		})
	})

	if cfg.Metrics.Enabled {
		r.Handle("/metrics", metrics.Handler())
	}

	return r
}
