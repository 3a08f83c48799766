package api

import (
	"go.uber.org/zap"

	"minsu-content-backend/config"
	"minsu-content-backend/internal/content"
	"minsu-content-backend/internal/storage"
	"minsu-content-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store  store.Store
	media  *storage.Store
	loader *content.Loader
	auth   *config.AuthConfig
	logger *zap.Logger
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, media *storage.Store, authCfg *config.AuthConfig, logger *zap.Logger) *Handler {
	return &Handler{
		store:  s,
		media:  media,
		loader: content.NewLoader(s, logger),
		auth:   authCfg,
		logger: logger,
	}
}
