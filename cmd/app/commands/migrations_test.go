package commands

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationsPath(t *testing.T) {
	tests := []struct {
		driver   string
		expected string
	}{
		{driver: "postgres", expected: "file://migrations/postgresql"},
		{driver: "mysql", expected: "file://migrations/mysql"},
	}

	for _, tt := range tests {
		t.Run(tt.driver, func(t *testing.T) {
			assert.Equal(t, tt.expected, migrationsPath(tt.driver))
		})
	}
}

func TestRunMigrations(t *testing.T) {
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))

	t.Run("invalid connection string", func(t *testing.T) {
		err := runMigrations(logger, "postgres", "invalid-connection-string")
		require.Error(t, err)
		require.Contains(t, err.Error(), "failed to create migrate instance")
	})
}
