package main

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/arloliu/meshcodec/format"
)

// Config controls the pack pipeline. All fields have working defaults so a
// missing config file packs with sensible settings.
type Config struct {
	// PositionBits is the quantization precision for position components.
	PositionBits int `toml:"position_bits"`
	// UVBits is the quantization precision for texture coordinates.
	UVBits int `toml:"uv_bits"`
	// Compression names the stored-blob codec: none, zstd, s2, or lz4.
	Compression string `toml:"compression"`
	// Checksum toggles the xxHash64 container trailer.
	Checksum bool `toml:"checksum"`
}

func defaultConfig() Config {
	return Config{
		PositionBits: 14,
		UVBits:       12,
		Compression:  "zstd",
		Checksum:     true,
	}
}

// loadConfig reads a TOML config file, applying defaults for absent fields.
// An empty path returns the defaults.
func loadConfig(path string) (Config, error) {
	cfg := defaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config: %w", err)
	}

	return cfg, cfg.validate()
}

func (c *Config) validate() error {
	if c.PositionBits < 1 || c.PositionBits > 16 {
		return fmt.Errorf("position_bits must be in 1..16, got %d", c.PositionBits)
	}
	if c.UVBits < 1 || c.UVBits > 16 {
		return fmt.Errorf("uv_bits must be in 1..16, got %d", c.UVBits)
	}
	if _, ok := format.ParseCompressionType(c.Compression); !ok {
		return fmt.Errorf("unknown compression %q", c.Compression)
	}

	return nil
}

func (c *Config) compressionType() format.CompressionType {
	t, _ := format.ParseCompressionType(c.Compression)
	return t
}
