// Package config loads the engine's runtime tuning knobs from YAML,
// mirroring the teacher's use of gopkg.in/yaml.v3 for device and profile
// configuration elsewhere in the original repo.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itohio/tensorgraph/kernel"
)

// EngineConfig holds the knobs that tune the evaluator's kernel dispatch
// without changing its semantics.
type EngineConfig struct {
	// ChunkSize overrides kernel.ChunkSize, the packing granularity used
	// for non-contiguous binary-op operands. Zero means "leave the
	// package default".
	ChunkSize int `yaml:"chunk_size"`
	// Backend names which kernel.Backend to use. Only "cpu" is wired to
	// an implementation today; any other value is rejected by Apply.
	Backend string `yaml:"backend"`
}

// DefaultEngineConfig returns a configuration that keeps kernel.ChunkSize at
// its current value (iter.DefaultChunkSize unless something has changed it)
// and selects the CPU backend.
func DefaultEngineConfig() EngineConfig {
	return EngineConfig{ChunkSize: kernel.ChunkSize, Backend: "cpu"}
}

// Load reads and parses an EngineConfig from path.
func Load(path string) (EngineConfig, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return EngineConfig{}, err
	}
	cfg := DefaultEngineConfig()
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return EngineConfig{}, err
	}
	return cfg, nil
}

// ErrUnknownBackend is returned by Apply when Backend names anything other
// than the sole implemented backend, "cpu".
type ErrUnknownBackend struct{ Name string }

func (e *ErrUnknownBackend) Error() string {
	return fmt.Sprintf("config: unknown backend %q", e.Name)
}

// Apply pushes cfg's knobs into the packages they tune. It is the caller's
// job to call this once at startup, before any tensor is materialized.
func (c EngineConfig) Apply() error {
	if c.Backend != "" && c.Backend != "cpu" {
		return &ErrUnknownBackend{Name: c.Backend}
	}
	if c.ChunkSize > 0 {
		kernel.ChunkSize = c.ChunkSize
	}
	return nil
}
