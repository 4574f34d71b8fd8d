package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/kerbaras/movies/pkg/integrations"
	"github.com/kerbaras/movies/pkg/services"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export popular movies to an EPUB booklet",
	Long: `Fetch the discovery list and write it as an EPUB, one page per movie
with its poster, rating, language and release year.

Examples:
  movies export
  movies export -o ~/Books/popular.epub`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		output, _ := cmd.Flags().GetString("output")

		cfg := loadConfig()
		logger := cliLogger()

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()

		journal, closeJournal := openJournal(cfg, logger)
		defer closeJournal()

		controller := services.NewMovieController(newCatalog(cfg), journal, logger)
		posters := services.NewPosterDownloader(cfg.ImageBaseURL, logger)

		fmt.Println("📥 Fetching popular movies and posters...")
		n, err := controller.ExportEPUB(ctx, posters, output)
		if err != nil {
			closeJournal()
			cobra.CheckErr(fmt.Errorf("export failed: %w", err))
		}

		fmt.Printf("📖 Exported %d movies to %s\n", n, output)
	},
}

func init() {
	exportCmd.Flags().StringP("output", "o", integrations.EPUBFilename(services.ExportTitle), "Output file path")
}
