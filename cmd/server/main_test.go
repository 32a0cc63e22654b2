package main

import (
	"bytes"
	"context"
	"testing"

	"credential_store_backend/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestRootCommand_HasExpectedSubcommands(t *testing.T) {
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"--help"})

	require.NoError(t, cmd.Execute())

	for _, sub := range []string{"serve", "check-config"} {
		assert.Contains(t, buf.String(), sub, "Help missing %q command", sub)
	}
}

func TestCheckConfigCommand(t *testing.T) {
	t.Setenv("STORE_DRIVER", "sqlite")
	t.Setenv("SERVER_PORT", "9090")

	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs([]string{"check-config"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, buf.String(), "store_driver=sqlite")
	assert.Contains(t, buf.String(), ":9090")
}

func TestCheckConfigCommand_Invalid(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	cmd := NewRootCmd()
	cmd.SetOut(new(bytes.Buffer))
	cmd.SetErr(new(bytes.Buffer))
	cmd.SetArgs([]string{"check-config", "--quiet"})

	assert.Error(t, cmd.Execute())
}

func TestProvideRepository(t *testing.T) {
	logger := zap.NewNop()

	t.Run("memory", func(t *testing.T) {
		repo, cleanup, err := provideRepository(&config.Config{StoreDriver: config.StoreDriverMemory}, logger)
		require.NoError(t, err)
		require.NotNil(t, repo)
		cleanup()
	})

	t.Run("sqlite", func(t *testing.T) {
		cfg := &config.Config{
			StoreDriver:    config.StoreDriverSQLite,
			SQLiteDSN:      "file:provider_test?mode=memory&cache=shared",
			LogLevel:       "error",
			DBMaxIdleConns: 1,
			DBMaxOpenConns: 1,
		}
		repo, cleanup, err := provideRepository(cfg, logger)
		require.NoError(t, err)
		defer cleanup()

		n, err := repo.Count(context.Background())
		require.NoError(t, err)
		assert.Zero(t, n)
	})

	t.Run("unknown driver", func(t *testing.T) {
		_, _, err := provideRepository(&config.Config{StoreDriver: "postgres"}, logger)
		assert.Error(t, err)
	})
}
