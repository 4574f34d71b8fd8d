package cmd

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/movies/pkg/config"
	"github.com/kerbaras/movies/pkg/data"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent fetches",
	Long:  "Display the fetch journal: when each startup fetch ran and how it settled",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		limit, _ := cmd.Flags().GetInt("limit")

		// the journal needs no API key, so skip Validate
		cfg, err := config.Load(configPath)
		if err != nil {
			cobra.CheckErr(err)
		}

		repo, err := data.NewDuckDBRepository(cfg.DBPath)
		if err != nil {
			cobra.CheckErr(err)
		}
		defer repo.Close()

		records, err := repo.ListFetches(limit)
		if err != nil {
			repo.Close()
			cobra.CheckErr(err)
		}

		if len(records) == 0 {
			fmt.Println("📭 No fetches recorded yet. Run 'movies' to fetch the list.")
			return
		}

		columns := []table.Column{
			{Title: "When", Width: 20},
			{Title: "Outcome", Width: 16},
			{Title: "Movies", Width: 8},
			{Title: "Duration", Width: 10},
			{Title: "Error", Width: 40},
		}

		rows := []table.Row{}
		for _, rec := range records {
			rows = append(rows, table.Row{
				rec.FetchedAt.Local().Format("2006-01-02 15:04:05"),
				string(rec.Outcome),
				fmt.Sprintf("%d", rec.Count),
				fmt.Sprintf("%dms", rec.DurationMS),
				truncateString(rec.Error, 38),
			})
		}

		t := table.New(
			table.WithColumns(columns),
			table.WithRows(rows),
			table.WithFocused(false),
			table.WithHeight(len(rows)),
		)

		s := table.DefaultStyles()
		s.Header = s.Header.
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			BorderBottom(true).
			Bold(true)
		s.Selected = s.Selected.
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Bold(false)
		t.SetStyles(s)

		fmt.Printf("\n🕘 Fetch history (%d)\n\n", len(records))
		fmt.Println(t.View())

		counts, err := repo.CountByOutcome()
		if err != nil {
			repo.Close()
			cobra.CheckErr(err)
		}
		fmt.Printf("\n%s\n", outcomeSummary(counts))
	},
}

var outcomeOrder = []data.Outcome{
	data.OutcomeOK,
	data.OutcomeStatus,
	data.OutcomeFailureSignal,
	data.OutcomeException,
	data.OutcomeCancelled,
}

// outcomeSummary renders journal totals per outcome in a fixed order,
// skipping outcomes that never occurred.
func outcomeSummary(counts map[data.Outcome]int) string {
	var (
		parts []string
		total int
	)
	for _, o := range outcomeOrder {
		if n := counts[o]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s %d", o, n))
			total += n
		}
	}
	if total == 0 {
		return "Total: 0"
	}
	return fmt.Sprintf("Total: %d (%s)", total, strings.Join(parts, ", "))
}

func init() {
	historyCmd.Flags().IntP("limit", "n", 20, "Number of entries to show (0 for all)")
}
