package integrity

import (
	"testing"

	"tag-manager/core/database"
	"tag-manager/core/reconcile"
	"tag-manager/core/storage/mocks"
	"tag-manager/feature/tags"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&tags.Tag{}))
	return db
}

func setupService(t *testing.T) (*Service, *mocks.Client, *gorm.DB) {
	t.Helper()
	client := new(mocks.Client)
	db := newTestDB(t)
	tagService := tags.NewService(client, "test-bucket", zap.NewNop(), db, reconcile.Config{})
	return NewService(client, "test-bucket", zap.NewNop(), db, tagService), client, db
}

func setupTestApp(t *testing.T) (*fiber.App, *mocks.Client, *gorm.DB) {
	t.Helper()
	svc, client, db := setupService(t)
	app := fiber.New()
	NewHandler(svc).RegisterRoutes(app)
	return app, client, db
}

func createTags(t *testing.T, db *gorm.DB, project string, list ...*tags.Tag) {
	t.Helper()
	for _, tag := range list {
		tag.Project = project
		require.NoError(t, db.Create(tag).Error)
	}
}
