package database

import (
	"testing"

	"resep/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestOpen_SQLiteMigratesEveryTable(t *testing.T) {
	db, err := Open("sqlite", "file:database_test?mode=memory&cache=shared", false)
	require.NoError(t, err)

	for _, m := range Models() {
		assert.True(t, db.Migrator().HasTable(m), "missing table for %T", m)
	}
	assert.True(t, db.Migrator().HasTable("recipe_tags"))
	assert.True(t, db.Migrator().HasTable("recipe_ingredients"))
	assert.True(t, db.Migrator().HasTable("item_promos"))
	assert.True(t, db.Migrator().HasIndex(&models.User{}, "Email"))
}

func TestOpen_UnknownDriver(t *testing.T) {
	_, err := Open("mysql", "whatever", false)
	assert.Error(t, err)
}

func TestOpen_TranslatesDuplicateKey(t *testing.T) {
	db, err := Open("sqlite", "file:database_dup_test?mode=memory&cache=shared", false)
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	require.NoError(t, db.Create(&models.User{ID: "u1", Email: "a@example.com"}).Error)
	err = db.Create(&models.User{ID: "u2", Email: "a@example.com"}).Error
	assert.ErrorIs(t, err, gorm.ErrDuplicatedKey)
}

func TestClose_ReleasesPool(t *testing.T) {
	db, err := Open("sqlite", "file:database_close_test?mode=memory&cache=shared", false)
	require.NoError(t, err)

	require.NoError(t, Close(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Error(t, sqlDB.Ping())
}
