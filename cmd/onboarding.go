package cmd

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

const configHeader = `# dashdeck configuration
#
# Uncomment a key to set it. Flags override this file, and this file
# overrides DASHDECK_* environment variables.

`

// firstRunConfig lists the keys written to a fresh config file.
type firstRunConfig struct {
	DBPath           string `toml:"db_path"`
	PageSize         int    `toml:"page_size"`
	PageSizeOptions  []int  `toml:"page_size_options"`
	OrderCacheSize   int    `toml:"order_cache_size"`
	SearchDebounceMS int    `toml:"search_debounce_ms"`
	LogLevel         string `toml:"log_level"`
	LogFile          string `toml:"log_file"`
}

// ensureConfigFile writes a commented-out copy of the defaults on first run.
func ensureConfigFile(path string, defaults Config) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to stat config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(firstRunConfig{
		DBPath:           defaults.DBPath,
		PageSize:         defaults.PageSize,
		PageSizeOptions:  defaults.PageSizeOptions,
		OrderCacheSize:   defaults.OrderCacheSize,
		SearchDebounceMS: defaults.SearchDebounceMS,
		LogLevel:         defaults.LogLevel,
		LogFile:          defaults.LogFile,
	})
	if err != nil {
		return fmt.Errorf("failed to encode default config: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString(configHeader)
	for _, line := range bytes.Split(bytes.TrimSpace(data), []byte("\n")) {
		buf.WriteString("# ")
		buf.Write(line)
		buf.WriteByte('\n')
	}

	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		return fmt.Errorf("failed to write default config: %w", err)
	}
	return nil
}
