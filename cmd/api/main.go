package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/folio/backend/internal/config"
	"github.com/zhouzirui/folio/backend/internal/handler"
	"github.com/zhouzirui/folio/backend/internal/logger"
	"github.com/zhouzirui/folio/backend/internal/model/chat"
	chatService "github.com/zhouzirui/folio/backend/internal/service/chat"
	"github.com/zhouzirui/folio/backend/internal/store"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Load .env file
	envErr := godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	l, err := logger.NewStdout(cfg.Logging)
	if err != nil {
		log.Fatal().Err(err).Str("level", cfg.Logging.Level).Msg("invalid log level")
	}
	log.Logger = l
	zerolog.DefaultContextLogger = &l

	if envErr != nil {
		log.Debug().Err(envErr).Msg("no .env file loaded, using process environment only")
	}

	st := store.NewMemoryStore(store.WithModes(chat.Seed()))
	chatSvc := chatService.NewService(st)
	log.Info().Int("modes", len(st.ListChatModes(ctx))).Msg("store initialized")

	router := handler.NewRouter(cfg, st, chatSvc)

	startServer(ctx, cfg.Server, router)
}

func startServer(ctx context.Context, serverCfg config.ServerConfig, router http.Handler) {
	srv := &http.Server{
		Addr:              serverCfg.Addr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	log.Info().Str("addr", serverCfg.Addr).Msg("portfolio backend listening")
	if err := runServer(ctx, srv, serverCfg.ShutdownTimeout); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

func runServer(ctx context.Context, srv *http.Server, shutdownTimeout time.Duration) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		err := <-errCh
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}
