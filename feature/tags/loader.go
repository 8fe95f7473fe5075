package tags

import (
	"context"

	"tag-manager/core/reconcile"
	"tag-manager/core/storage"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	service *Service
	handler *Handler
	enabled bool
}

// NewFeature creates a new Tags feature. Without a database the feature stays disabled.
func NewFeature(client storage.Client, bucket string, logger *zap.Logger, db *gorm.DB, defaults reconcile.Config) *Feature {
	svc := NewService(client, bucket, logger, db, defaults)
	h := NewHandler(svc)
	return &Feature{service: svc, handler: h, enabled: db != nil}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "tags"
}

// IsEnabled checks if the feature is enabled.
func (f *Feature) IsEnabled() bool {
	return f.enabled
}

// Load prepares the tags table and registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	if err := f.service.Prepare(context.Background()); err != nil {
		return err
	}
	f.handler.RegisterRoutes(app)
	return nil
}

// Service returns the feature's service.
func (f *Feature) Service() *Service {
	return f.service
}
