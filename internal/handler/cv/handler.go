package cv

import (
	"fmt"
	"net/http"
	"os"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/zhouzirui/folio/backend/internal/config"
	"github.com/zhouzirui/folio/backend/pkg/utils"
)

// placeholder 未配置简历文件时返回的占位内容
var placeholder = []byte("This is a placeholder for the actual CV file")

// Handler 简历下载处理器
type Handler struct {
	cfg config.CVConfig
}

// New 创建简历下载处理器
func New(cfg config.CVConfig) *Handler {
	return &Handler{cfg: cfg}
}

// RegisterRoutes 注册简历下载路由
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Get("/download-cv", h.handleDownload)
}

func (h *Handler) handleDownload(w http.ResponseWriter, _ *http.Request) {
	body := placeholder
	if h.cfg.Path != "" {
		data, err := os.ReadFile(h.cfg.Path)
		if err != nil {
			log.Error().Stack().Err(err).Str("path", h.cfg.Path).Msg("failed to read CV file")
			utils.RespondError(w, http.StatusInternalServerError, "Failed to load CV")
			return
		}
		body = data
	}

	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", h.cfg.FileName))
	w.Header().Set("Content-Type", "application/pdf")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Warn().Err(err).Msg("failed to write CV response")
	}
}
