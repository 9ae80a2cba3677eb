package database_test

import (
	"context"
	"fmt"
	"testing"

	"catalog/internal/models"
	"catalog/pkg/database"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := database.Open(database.Config{Driver: "sqlite", DSN: dsn}, &models.Product{})
	require.NoError(t, err)

	assert.True(t, db.Migrator().HasTable(&models.Product{}))
	assert.True(t, db.Migrator().HasColumn(&models.Product{}, "DescriptionShort"))
	assert.NoError(t, database.Ping(context.Background(), db))

	require.NoError(t, database.Close(db))
	assert.Error(t, database.Ping(context.Background(), db))
}

func TestOpenUnsupportedDriver(t *testing.T) {
	db, err := database.Open(database.Config{Driver: "mysql", DSN: "whatever"})
	assert.Nil(t, db)
	assert.ErrorContains(t, err, `unsupported database driver "mysql"`)
}
