package tags

import (
	"testing"

	"tag-manager/core/database"
	"tag-manager/core/reconcile"
	"tag-manager/core/storage"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// newTestDB opens a migrated in-memory database.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Tag{}))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})
	return db
}

func newTestService(t *testing.T, client storage.Client, defaults reconcile.Config) (*Service, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	return NewService(client, "assets", zap.NewNop(), db, defaults), db
}

// seed stores tags for project, one address each on controller 0.
func seed(t *testing.T, db *gorm.DB, project string, pairs ...string) {
	t.Helper()
	for i := 0; i+1 < len(pairs); i += 2 {
		tag := &Tag{Project: project, Name: pairs[i]}
		if pairs[i+1] != "" {
			tag.SetAddress(0, pairs[i+1])
		}
		require.NoError(t, db.Create(tag).Error)
	}
}

func tagNames(tags []*Tag) []string {
	var out []string
	for _, tag := range tags {
		out = append(out, tag.Name)
	}
	return out
}

func silent() ImportOptions {
	return ImportOptions{Mode: reconcile.ModeSilent}
}
