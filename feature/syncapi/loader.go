package syncapi

import (
	"github.com/doughepi/grain/core/ingest"
	"github.com/doughepi/grain/core/remote"
	"github.com/doughepi/grain/feature/history"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
}

// NewFeature creates the sync API feature.
func NewFeature(engine *ingest.Engine, client remote.Client, repo *history.Repository, allowedRoots string, logger *zap.Logger) *Feature {
	svc := NewService(engine, client, repo, allowedRoots, logger)
	return &Feature{service: svc, handler: NewHandler(svc)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.service.engine != nil && f.service.client != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
