// Package config reads and writes the optional doby defaults file. The
// file supplies default values for the CLI knobs; explicit flags always
// win, and a missing file means built-in defaults.
package config

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// CipherAuto selects the cipher from the host CPU's AES support.
const CipherAuto = "auto"

// Config holds the persistent defaults for an invocation.
type Config struct {
	TimeCost    uint32 `toml:"time_cost"`   // Argon2 iterations
	MemoryCost  uint32 `toml:"memory_cost"` // Argon2 kilobytes
	Parallelism uint8  `toml:"parallelism"` // Argon2 lanes
	BlockSize   int    `toml:"block_size"`  // I/O buffer size in bytes
	Cipher      string `toml:"cipher"`      // "aes", "xchacha20" or "auto"
}

// Default returns the built-in defaults used when no config file exists.
func Default() *Config {
	return &Config{
		TimeCost:    10,
		MemoryCost:  4096,
		Parallelism: 4,
		BlockSize:   65536,
		Cipher:      CipherAuto,
	}
}

// Validate rejects an unknown cipher name and a non-positive block size.
// The Argon2 costs are not checked here; they are validated when the
// engine parameters are built.
func (c *Config) Validate() error {
	switch c.Cipher {
	case "aes", "xchacha20", CipherAuto:
	default:
		return fmt.Errorf("invalid cipher %q (expected \"aes\", \"xchacha20\" or \"auto\")", c.Cipher)
	}
	if c.BlockSize < 1 {
		return fmt.Errorf("block_size must be positive, got %d", c.BlockSize)
	}
	return nil
}

// Manager handles reading and writing configuration.
type Manager struct{}

// Read decodes a Config from the provided reader. Fields absent from
// the document keep their built-in defaults.
func (m *Manager) Read(r io.Reader) (*Config, error) {
	cfg := Default()
	if _, err := toml.NewDecoder(r).Decode(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Write encodes a Config to the provided writer.
func (m *Manager) Write(w io.Writer, cfg *Config) error {
	if err := toml.NewEncoder(w).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}
	return nil
}

// ReadFromFile reads a Config from the specified file path. A missing
// file is not an error; it yields the built-in defaults.
func ReadFromFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return Default(), nil
		}
		return nil, fmt.Errorf("failed to open config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	cfg, err := m.Read(f)
	if err != nil {
		return nil, fmt.Errorf("reading config from %s: %w", path, err)
	}
	return cfg, nil
}

// writeToFile writes a Config to the specified file path.
func writeToFile(path string, cfg *Config) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create config file: %w", err)
	}
	defer f.Close()

	m := &Manager{}
	if err := m.Write(f, cfg); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

// Init initializes a new config file at the specified path with the
// provided Config. It refuses to overwrite an existing file.
func Init(path string, cfg *Config) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := writeToFile(path, cfg); err != nil {
		return fmt.Errorf("initializing config: %w", err)
	}
	return nil
}
