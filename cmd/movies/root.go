package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/movies/pkg/app"
	"github.com/kerbaras/movies/pkg/config"
	"github.com/kerbaras/movies/pkg/data"
	"github.com/kerbaras/movies/pkg/services"
	"github.com/kerbaras/movies/pkg/sources"
	"github.com/spf13/cobra"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "movies",
	Short: "Browse popular movies from your terminal",
	Long:  "Find movies you'll enjoy without the hassle, with a TUI and a few CLI helpers",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		logger, closeLog, err := tuiLogger(cfg.LogFile)
		if err != nil {
			cobra.CheckErr(err)
		}
		defer closeLog()

		journal, closeJournal := openJournal(cfg, logger)
		defer closeJournal()

		controller := services.NewMovieController(newCatalog(cfg), journal, logger)

		// Launch TUI by default
		a := app.NewApp(controller, cfg.ImageBaseURL, logger)
		if err := a.Run(); err != nil {
			cobra.CheckErr(err)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ~/.config/movies/config.toml)")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(historyCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves and validates the configuration, exiting on error.
func loadConfig() config.Config {
	cfg, err := config.Load(configPath)
	if err != nil {
		cobra.CheckErr(err)
	}
	if err := cfg.Validate(); err != nil {
		cobra.CheckErr(fmt.Errorf("%w (export it or add it to .env)", err))
	}
	return cfg
}

func newCatalog(cfg config.Config) *sources.TMDB {
	return sources.NewTMDB(cfg.APIBaseURL, cfg.APIKey, cfg.Timeout)
}

// openJournal returns a nil journal when the database cannot be opened;
// the journal is optional. The returned func closes it.
func openJournal(cfg config.Config, logger *slog.Logger) (services.Journal, func()) {
	repo, err := data.NewDuckDBRepository(cfg.DBPath)
	if err != nil {
		logger.Warn("fetch journal disabled", "path", cfg.DBPath, "error", err)
		return nil, func() {}
	}
	return repo, func() {
		if err := repo.Close(); err != nil {
			logger.Warn("failed to close fetch journal", "error", err)
		}
	}
}

// tuiLogger sends logs to a file since the terminal belongs to the TUI.
func tuiLogger(path string) (*slog.Logger, func(), error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, nil, fmt.Errorf("create log directory: %w", err)
	}
	f, err := tea.LogToFile(path, "movies")
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	logger := slog.New(slog.NewTextHandler(f, nil))
	return logger, func() { _ = f.Close() }, nil
}

func cliLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))
}
