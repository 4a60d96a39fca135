package sync

import (
	"github.com/gofiber/fiber/v2"
)

// Feature plugs the sync endpoints into the application loader.
type Feature struct {
	handler *Handler
}

// NewFeature creates the loadable sync feature.
func NewFeature(service *Service) *Feature {
	return &Feature{handler: NewHandler(service)}
}

// Name returns the feature name.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled reports whether the feature should be loaded.
func (f *Feature) IsEnabled() bool {
	return true
}

// Load registers the feature routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
