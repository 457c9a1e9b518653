package db

import (
	"testing"

	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/require"
)

func TestMigrationsAreEmbedded(t *testing.T) {
	goose.SetBaseFS(migrations)
	defer goose.SetBaseFS(nil)

	collected, err := goose.CollectMigrations(migrationsDir, 0, goose.MaxVersion)
	require.NoError(t, err)
	require.NotEmpty(t, collected)
	require.Equal(t, int64(1), collected[0].Version)
}
