package app

import (
	"log/slog"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/movies/pkg/app/screens"
)

type App struct {
	fetcher      screens.Fetcher
	imageBaseURL string
	logger       *slog.Logger
}

func NewApp(fetcher screens.Fetcher, imageBaseURL string, logger *slog.Logger) *App {
	return &App{fetcher: fetcher, imageBaseURL: imageBaseURL, logger: logger}
}

func (a *App) Run() error {
	model := screens.NewRootScreen(a.fetcher, a.imageBaseURL, a.logger)
	defer model.Close()

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
