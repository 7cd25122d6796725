package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/tensorgraph/internal/config"
	"github.com/itohio/tensorgraph/kernel"
)

func TestLoadAndApplyOverridesChunkSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "engine.yaml")
	require.NoError(t, os.WriteFile(path, []byte("chunk_size: 64\nbackend: cpu\n"), 0o644))

	original := kernel.ChunkSize
	defer func() { kernel.ChunkSize = original }()

	cfg, err := config.Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Apply())

	assert.Equal(t, 64, kernel.ChunkSize)
}

func TestApplyRejectsUnknownBackend(t *testing.T) {
	cfg := config.EngineConfig{Backend: "tpu"}
	err := cfg.Apply()
	require.Error(t, err)
	var target *config.ErrUnknownBackend
	require.ErrorAs(t, err, &target)
}
