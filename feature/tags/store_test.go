package tags

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"tag-manager/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func TestStore_PrepareAndList(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()

	require.NoError(t, store.Prepare(ctx))

	seed(t, db, "plant", "T1", "DB1.X0", "T2", "")
	seed(t, db, "lab", "L1", "")

	tags, err := store.List(ctx, "plant")
	require.NoError(t, err)
	assert.Equal(t, []string{"T1", "T2"}, tagNames(tags))
	assert.Equal(t, []string{"DB1.X0"}, tags[0].Addresses)

	projects, err := store.Projects(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"lab", "plant"}, projects)
}

func TestStore_VerifyMissingColumns(t *testing.T) {
	db := newTestDB(t)
	require.NoError(t, db.Migrator().DropTable(&Tag{}))
	require.NoError(t, db.Exec("CREATE TABLE tags (id INTEGER PRIMARY KEY, project TEXT, name TEXT)").Error)

	err := NewStore(db).Verify(context.Background())
	assert.ErrorContains(t, err, "tag_group")
	assert.ErrorContains(t, err, "access_rights")
}

func TestStore_Save(t *testing.T) {
	db := newTestDB(t)
	store := NewStore(db)
	ctx := context.Background()
	seed(t, db, "plant", "T1", "A1", "T2", "A2", "T3", "A3")

	existing, err := store.List(ctx, "plant")
	require.NoError(t, err)

	engine := reconcile.NewEngine[*Tag](NewAdapter("plant"), reconcile.Hooks[*Tag]{}, nil)
	records := []reconcile.Record{
		{"Name": "T1", "Address_1": "A1_new", "Description": "updated"},
		{"Name": "T4", "Address_1": "A4"},
		{"Name": "T4", "Description": "again"},
	}
	plan, err := engine.MergeLists(ctx, existing, records, reconcile.ModeSilent, reconcile.Settings{DeleteUnused: true})
	require.NoError(t, err)

	t.Run("without deletes", func(t *testing.T) {
		saved, removed, err := store.Save(ctx, "plant", plan, false)
		require.NoError(t, err)
		assert.Equal(t, 2, saved, "T4 is written once")
		assert.Equal(t, 0, removed)

		tags, err := store.List(ctx, "plant")
		require.NoError(t, err)
		assert.Equal(t, []string{"T1", "T2", "T3", "T4"}, tagNames(tags))
		assert.Equal(t, "A1_new", tags[0].GetAddress(0))
		assert.Equal(t, "updated", tags[0].Description)
		assert.Equal(t, "again", tags[3].Description)
		assert.Equal(t, "plant", tags[3].Project)
	})

	t.Run("with deletes", func(t *testing.T) {
		_, removed, err := store.Save(ctx, "plant", plan, true)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		tags, err := store.List(ctx, "plant")
		require.NoError(t, err)
		assert.Equal(t, []string{"T1", "T4"}, tagNames(tags))
	})
}

func TestStore_SaveRequiresAppliedPlan(t *testing.T) {
	store := NewStore(newTestDB(t))
	engine := reconcile.NewEngine[*Tag](NewAdapter("plant"), reconcile.Hooks[*Tag]{}, nil)

	plan, err := engine.Plan(context.Background(), nil, []reconcile.Record{{"Name": "T1"}}, reconcile.ModeSilent, reconcile.Settings{})
	require.NoError(t, err)

	_, _, err = store.Save(context.Background(), "plant", plan, false)
	assert.ErrorContains(t, err, "not been applied")
}

func TestStore_SaveRollsBack(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	engine := reconcile.NewEngine[*Tag](NewAdapter("plant"), reconcile.Hooks[*Tag]{}, nil)
	plan, err := engine.MergeLists(context.Background(), nil, []reconcile.Record{{"Name": "T1"}}, reconcile.ModeSilent, reconcile.Settings{})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `tags`")).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, _, err = NewStore(gormDB).Save(context.Background(), "plant", plan, false)
	assert.ErrorContains(t, err, "disk full")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_ListError(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{})
	require.NoError(t, err)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT * FROM `tags` WHERE project = ?")).
		WithArgs("plant").
		WillReturnError(errors.New("connection reset"))

	_, err = NewStore(gormDB).List(context.Background(), "plant")
	assert.ErrorContains(t, err, "connection reset")
	assert.NoError(t, mock.ExpectationsWereMet())
}
