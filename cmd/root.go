package cmd

import (
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"dashdeck/internal/db"
	"dashdeck/internal/logging"
	"dashdeck/internal/ui"
)

// NewRootCmd builds the dashdeck command tree.
func NewRootCmd(version string) *cobra.Command {
	root := &cobra.Command{
		Use:           "dashdeck",
		Short:         "Terminal dashboard for products, orders and a weekly schedule",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(c *cobra.Command, _ []string) error {
			configDir, err := defaultConfigDir()
			if err != nil {
				return err
			}
			cfg, err := resolveConfig(c, configDir)
			if err != nil {
				return err
			}
			return run(cfg, version)
		},
	}

	flags := root.Flags()
	flags.String("db", "", "Path to SQLite database file (default: ~/.dashdeck/dashdeck.db)")
	flags.String("config", "", "Path to config file (default: ~/.dashdeck/config.toml)")
	flags.Int("page-size", 0, "Rows per page")
	flags.String("log-level", "", "Log level: debug, info, warn or error")
	flags.String("log-file", "", "Log file path (default: ~/.dashdeck/dashdeck.log)")

	root.AddCommand(newVersionCmd(version))
	return root
}

func newVersionCmd(version string) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the dashdeck version",
		Args:  cobra.NoArgs,
		Run: func(c *cobra.Command, _ []string) {
			fmt.Fprintf(c.OutOrStdout(), "dashdeck %s\n", version)
		},
	}
}

// Execute runs the root command and exits non-zero on failure.
func Execute(version string) {
	if err := NewRootCmd(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cfg Config, version string) error {
	lggr, cleanup, err := logging.Config{Path: cfg.LogFile, Level: cfg.LogLevel}.New()
	if err != nil {
		return err
	}
	defer cleanup()
	lggr.Infow("starting", "version", version, "db", cfg.DBPath, "pageSize", cfg.PageSize)

	database, err := db.Open(cfg.DBPath)
	if err != nil {
		lggr.Errorw("failed to open database", "err", err)
		return err
	}
	defer database.Close()

	orders, err := db.NewOrderStore(database, cfg.OrderCacheSize, lggr)
	if err != nil {
		return err
	}

	app, err := ui.New(ui.Options{
		DB:              database,
		Orders:          orders,
		Logger:          lggr,
		PageSize:        cfg.PageSize,
		PageSizeOptions: cfg.PageSizeOptions,
		SearchDebounce:  time.Duration(cfg.SearchDebounceMS) * time.Millisecond,
		PrefsPath:       cfg.PrefsPath,
	})
	if err != nil {
		return err
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		lggr.Errorw("program exited with error", "err", err)
		return fmt.Errorf("error running app: %w", err)
	}
	lggr.Info("exiting")
	return nil
}
