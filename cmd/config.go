package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
)

// Config holds the resolved application configuration.
type Config struct {
	DBPath           string `toml:"db_path"`
	PageSize         int    `toml:"page_size"`
	PageSizeOptions  []int  `toml:"page_size_options"`
	OrderCacheSize   int    `toml:"order_cache_size"`
	SearchDebounceMS int    `toml:"search_debounce_ms"`
	LogLevel         string `toml:"log_level"`
	LogFile          string `toml:"log_file"`
	PrefsPath        string `toml:"prefs_path"`
}

func defaultConfig(configDir string) Config {
	return Config{
		DBPath:           filepath.Join(configDir, "dashdeck.db"),
		PageSize:         10,
		PageSizeOptions:  []int{5, 10, 20, 30, 40, 50},
		OrderCacheSize:   64,
		SearchDebounceMS: 250,
		LogLevel:         "info",
		LogFile:          filepath.Join(configDir, "dashdeck.log"),
		PrefsPath:        filepath.Join(configDir, "ui_prefs.yaml"),
	}
}

func defaultConfigDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".dashdeck"), nil
}

// applyEnv overlays DASHDECK_* environment variables.
func applyEnv(cfg *Config) error {
	if v := os.Getenv("DASHDECK_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("DASHDECK_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DASHDECK_LOG_FILE"); v != "" {
		cfg.LogFile = v
	}
	if v := os.Getenv("DASHDECK_PAGE_SIZE"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid DASHDECK_PAGE_SIZE %q: %w", v, err)
		}
		cfg.PageSize = n
	}
	return nil
}

// loadConfigFile decodes path over cfg. Keys missing from the file keep their
// current values. A missing file is not an error.
func loadConfigFile(path string, cfg *Config) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read config: %w", err)
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return false, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return true, nil
}

// applyFlags overlays the flags the user set explicitly.
func applyFlags(c *cobra.Command, cfg *Config) error {
	flags := c.Flags()
	var err error
	if flags.Changed("db") {
		cfg.DBPath, err = flags.GetString("db")
		if err != nil {
			return err
		}
	}
	if flags.Changed("page-size") {
		cfg.PageSize, err = flags.GetInt("page-size")
		if err != nil {
			return err
		}
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, err = flags.GetString("log-level")
		if err != nil {
			return err
		}
	}
	if flags.Changed("log-file") {
		cfg.LogFile, err = flags.GetString("log-file")
		if err != nil {
			return err
		}
	}
	return nil
}

func (c *Config) validate() error {
	if c.DBPath == "" {
		return errors.New("database path is empty")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("page size must be positive, got %d", c.PageSize)
	}
	for _, n := range c.PageSizeOptions {
		if n <= 0 {
			return fmt.Errorf("page size options must be positive, got %d", n)
		}
	}
	if !slices.Contains(c.PageSizeOptions, c.PageSize) {
		c.PageSizeOptions = append(c.PageSizeOptions, c.PageSize)
	}
	slices.Sort(c.PageSizeOptions)
	c.PageSizeOptions = slices.Compact(c.PageSizeOptions)
	if c.SearchDebounceMS < 0 {
		c.SearchDebounceMS = 0
	}
	return nil
}

// resolveConfig builds the configuration: defaults, then the environment,
// then the config file, then explicit flags.
func resolveConfig(c *cobra.Command, configDir string) (Config, error) {
	cfg := defaultConfig(configDir)

	loadDotEnv(".env")
	loadDotEnv(".env.local")
	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	path, err := c.Flags().GetString("config")
	if err != nil {
		return Config{}, err
	}
	explicit := c.Flags().Changed("config")
	if !explicit {
		path = filepath.Join(configDir, "config.toml")
		if err := ensureConfigFile(path, defaultConfig(configDir)); err != nil {
			return Config{}, err
		}
	}

	found, err := loadConfigFile(path, &cfg)
	if err != nil {
		return Config{}, err
	}
	if explicit && !found {
		return Config{}, fmt.Errorf("config file %s does not exist", path)
	}

	if err := applyFlags(c, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadDotEnv fills unset environment variables from path. A missing file is
// not an error.
func loadDotEnv(path string) {
	_ = godotenv.Load(path)
}
