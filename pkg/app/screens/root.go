package screens

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/movies/pkg/app/components"
	"github.com/kerbaras/movies/pkg/app/styles"
	"github.com/kerbaras/movies/pkg/data"
	"github.com/kerbaras/movies/pkg/services"
)

// headerHeight is the number of lines above the movie list.
const headerHeight = 14

// Fetcher runs the discovery fetch.
type Fetcher interface {
	FetchMovies(ctx context.Context) services.FetchResult
}

// RootScreen owns all screen state and the single startup fetch.
type RootScreen struct {
	fetcher Fetcher
	logger  *slog.Logger

	// ctx scopes the fetch to the screen's lifetime.
	ctx    context.Context
	cancel context.CancelFunc

	searchTerm   string
	movies       []data.Movie
	errorMessage string
	loading      bool
	fetchStarted bool

	search *components.Search
	list   *components.MovieList

	width  int
	height int
}

func NewRootScreen(fetcher Fetcher, imageBaseURL string, logger *slog.Logger) *RootScreen {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	ctx, cancel := context.WithCancel(context.Background())

	r := &RootScreen{
		fetcher: fetcher,
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
		movies:  []data.Movie{},
		list:    components.NewMovieList(imageBaseURL),
	}
	r.search = components.NewSearch(r.searchTerm, r.setSearchTerm)
	return r
}

func (r *RootScreen) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, r.fetchMovies())
}

func (r *RootScreen) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		r.width = msg.Width
		r.height = msg.Height
		r.list.Width = msg.Width - 4
		r.list.Height = msg.Height - headerHeight
		r.search.SetWidth(msg.Width - 12)
		return r, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "esc":
			r.Close()
			return r, tea.Quit
		case "up":
			r.list.Prev()
			return r, nil
		case "down":
			r.list.Next()
			return r, nil
		}

	case tea.MouseMsg:
		switch msg.Button {
		case tea.MouseButtonWheelUp:
			r.list.Prev()
		case tea.MouseButtonWheelDown:
			r.list.Next()
		}
		return r, nil

	case moviesFetchedMsg:
		r.applyFetch(msg.result)
		return r, nil
	}

	return r, r.search.Update(msg)
}

func (r *RootScreen) View() string {
	header := r.renderHero()
	searchView := r.search.View()
	heading := styles.SubtitleStyle.Render("All Movies")

	var body string
	switch {
	case r.loading:
		body = components.Shimmer{}.View()
	case r.errorMessage != "":
		body = styles.StatusError.Render(r.errorMessage)
	default:
		body = r.list.View()
	}

	help := styles.HelpStyle.Render("type to search • ↑/↓: scroll • esc: quit")

	return fmt.Sprintf("%s\n\n%s\n\n%s\n\n%s\n%s", header, searchView, heading, body, help)
}

// Close cancels an in-flight fetch. Results that settle afterwards are
// dropped instead of applied.
func (r *RootScreen) Close() {
	r.cancel()
}

func (r *RootScreen) SearchTerm() string   { return r.searchTerm }
func (r *RootScreen) Movies() []data.Movie { return r.movies }
func (r *RootScreen) Loading() bool        { return r.loading }
func (r *RootScreen) ErrorMessage() string { return r.errorMessage }

func (r *RootScreen) setSearchTerm(term string) {
	r.searchTerm = term
	r.search.SetValue(term)
}

func (r *RootScreen) renderHero() string {
	title := lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.HeroStyle.Render("Find "),
		styles.AccentStyle.Render("Movies"),
		styles.HeroStyle.Render(" You'll Enjoy Without The Hassle"),
	)
	banner := styles.TitleStyle.Render("🎬 movies")
	return lipgloss.JoinVertical(lipgloss.Left, banner, title)
}

// Messages
type moviesFetchedMsg struct {
	result services.FetchResult
}

// Commands

// fetchMovies starts the startup fetch. It runs at most once per screen.
func (r *RootScreen) fetchMovies() tea.Cmd {
	if r.fetchStarted {
		return nil
	}
	r.fetchStarted = true
	r.loading = true
	r.errorMessage = ""

	ctx := r.ctx
	return func() tea.Msg {
		return moviesFetchedMsg{result: r.fetcher.FetchMovies(ctx)}
	}
}

func (r *RootScreen) applyFetch(res services.FetchResult) {
	if r.ctx.Err() != nil {
		r.logger.Info("dropping fetch result after close", "outcome", res.Outcome)
		return
	}

	if res.ReplaceMovies {
		r.movies = res.Movies
		r.list.SetItems(res.Movies)
	}
	r.errorMessage = res.ErrorMessage

	r.settle()
}

// settle always runs once a fetch completes. It clears the error message
// together with the loading flag, so errors set above never reach View.
func (r *RootScreen) settle() {
	r.loading = false
	r.errorMessage = ""
}
