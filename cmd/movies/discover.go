package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/kerbaras/movies/pkg/app/components"
	"github.com/kerbaras/movies/pkg/services"
	"github.com/spf13/cobra"
)

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "List popular movies",
	Long:  "Fetch the popularity-sorted discovery list once and print it as a table",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()
		logger := cliLogger()
		journal, closeJournal := openJournal(cfg, logger)
		defer closeJournal()

		controller := services.NewMovieController(newCatalog(cfg), journal, logger)

		res := controller.FetchMovies(context.Background())
		if err := res.Failure(); err != nil {
			closeJournal()
			cobra.CheckErr(err)
		}

		if len(res.Movies) == 0 {
			fmt.Println("No movies found.")
			return
		}

		var (
			purple = lipgloss.Color("99")

			headerStyle = lipgloss.NewStyle().Foreground(purple).Bold(true).Align(lipgloss.Center)
			cellStyle   = lipgloss.NewStyle().Padding(0, 1)
		)

		t := table.New().
			Border(lipgloss.HiddenBorder()).
			BorderStyle(lipgloss.NewStyle().Foreground(purple)).
			StyleFunc(func(row, col int) lipgloss.Style {
				switch {
				case row == table.HeaderRow:
					return headerStyle
				default:
					return cellStyle
				}
			}).
			Headers("#", "Title", "Year", "Rating", "Lang")

		for i, movie := range res.Movies {
			card := components.NewMovieCard(movie, cfg.ImageBaseURL)
			t.Row(fmt.Sprintf("%d", i+1), truncateString(movie.Title, 48), card.Year(), card.Rating(), card.Language())
		}

		fmt.Println(t)
	},
}

func truncateString(s string, max int) string {
	runes := []rune(strings.TrimSpace(s))
	if len(runes) <= max {
		return string(runes)
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}
