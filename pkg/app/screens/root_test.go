package screens

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/kerbaras/movies/pkg/data"
	"github.com/kerbaras/movies/pkg/services"
	"github.com/kerbaras/movies/pkg/sources"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testImageBase = "https://image.tmdb.org/t/p"

type mockFetcher struct {
	fetchFunc func(ctx context.Context) services.FetchResult
	calls     int
}

func (m *mockFetcher) FetchMovies(ctx context.Context) services.FetchResult {
	m.calls++
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx)
	}
	return services.FetchResult{Outcome: data.OutcomeOK, ReplaceMovies: true, Movies: []data.Movie{}}
}

// collect runs cmd and flattens batches into the messages they produce.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var out []tea.Msg
		for _, c := range batch {
			out = append(out, collect(c)...)
		}
		return out
	}
	return []tea.Msg{msg}
}

// fetchMsg runs Init's commands and returns the fetch result message.
func fetchMsg(t *testing.T, cmd tea.Cmd) moviesFetchedMsg {
	t.Helper()
	for _, msg := range collect(cmd) {
		if m, ok := msg.(moviesFetchedMsg); ok {
			return m
		}
	}
	t.Fatal("Init did not issue a fetch")
	return moviesFetchedMsg{}
}

// newHTTPScreen wires the screen to a real client against handler.
func newHTTPScreen(t *testing.T, handler http.HandlerFunc) *RootScreen {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client := sources.NewTMDB(server.URL, "test-key", time.Second)
	controller := services.NewMovieController(client, nil, nil)
	screen := NewRootScreen(controller, testImageBase, nil)
	screen.Update(tea.WindowSizeMsg{Width: 100, Height: 200})
	return screen
}

func typeText(r *RootScreen, text string) {
	for _, ch := range text {
		r.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{ch}})
	}
}

func TestLoadingFlagLifecycle(t *testing.T) {
	screen := NewRootScreen(&mockFetcher{}, testImageBase, nil)
	assert.False(t, screen.Loading(), "not loading before the fetch starts")

	cmd := screen.Init()
	assert.True(t, screen.Loading(), "loading once the fetch starts")

	msg := fetchMsg(t, cmd)
	assert.True(t, screen.Loading(), "loading until the result is applied")

	screen.Update(msg)
	assert.False(t, screen.Loading(), "not loading after settlement")
}

func TestFetchRunsOnce(t *testing.T) {
	fetcher := &mockFetcher{}
	screen := NewRootScreen(fetcher, testImageBase, nil)

	screen.Update(fetchMsg(t, screen.Init()))
	collect(screen.Init())
	typeText(screen, "x")

	assert.Equal(t, 1, fetcher.calls)
}

func TestFetchClearsErrorBeforeRequest(t *testing.T) {
	screen := NewRootScreen(&mockFetcher{}, testImageBase, nil)
	screen.errorMessage = "stale"

	screen.Init()

	assert.Empty(t, screen.ErrorMessage())
}

// Scenario A
func TestScenarioSuccessRendersCardsInOrder(t *testing.T) {
	screen := newHTTPScreen(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"page":1,"results":[
			{"id":27205,"title":"Inception","release_date":"2010-07-15","vote_average":8.4,"original_language":"en"},
			{"id":680,"title":"Pulp Fiction","release_date":"1994-09-10","vote_average":8.5,"original_language":"en"}
		]}`))
	})

	cmd := screen.Init()
	assert.Contains(t, screen.View(), "▒", "shimmer shown while loading")
	assert.NotContains(t, screen.View(), "Inception")

	screen.Update(fetchMsg(t, cmd))

	view := screen.View()
	assert.NotContains(t, view, "▒")
	require.Len(t, screen.Movies(), 2)
	assert.Equal(t, []int64{27205, 680}, screen.list.Keys())

	i := strings.Index(view, "Inception")
	j := strings.Index(view, "Pulp Fiction")
	require.True(t, i >= 0 && j >= 0)
	assert.Less(t, i, j)
}

// Scenario B
func TestScenarioHTTPFailureShowsEmptyListWithoutError(t *testing.T) {
	screen := newHTTPScreen(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	})

	cmd := screen.Init()
	assert.Contains(t, screen.View(), "▒")

	msg := fetchMsg(t, cmd)
	assert.Equal(t, services.MsgFetchFailed, msg.result.ErrorMessage)
	screen.Update(msg)

	view := screen.View()
	assert.Empty(t, screen.Movies())
	assert.Empty(t, screen.ErrorMessage())
	assert.NotContains(t, view, services.MsgFetchFailed)
	assert.Contains(t, view, "No movies found")
}

// Scenario C
func TestScenarioFailureSignalShowsEmptyListWithoutError(t *testing.T) {
	screen := newHTTPScreen(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"Response":"False","Error":"no results"}`))
	})

	screen.Update(fetchMsg(t, screen.Init()))

	assert.Empty(t, screen.Movies())
	assert.Empty(t, screen.ErrorMessage())
	assert.NotContains(t, screen.View(), "no results")
}

// Scenario D
func TestScenarioTypingUpdatesSearchOnly(t *testing.T) {
	screen := NewRootScreen(&mockFetcher{}, testImageBase, nil)
	screen.Update(tea.WindowSizeMsg{Width: 100, Height: 200})
	screen.movies = []data.Movie{{ID: 1, Title: "Heat"}}
	screen.list.SetItems(screen.movies)

	typeText(screen, "Inception")

	assert.Equal(t, "Inception", screen.SearchTerm())
	assert.Equal(t, "Inception", screen.search.Value())
	assert.Contains(t, screen.View(), "Inception")
	assert.Equal(t, []data.Movie{{ID: 1, Title: "Heat"}}, screen.Movies(), "the list ignores the search term")
	assert.False(t, screen.Loading())
}

func TestTypingWhileLoading(t *testing.T) {
	screen := NewRootScreen(&mockFetcher{}, testImageBase, nil)
	cmd := screen.Init()

	typeText(screen, "Dune")
	assert.Equal(t, "Dune", screen.SearchTerm())
	assert.True(t, screen.Loading())

	screen.Update(fetchMsg(t, cmd))
	assert.Equal(t, "Dune", screen.SearchTerm())
}

// Every failure path ends with an empty error message: settlement clears
// whatever the branch set. Changing this must be a deliberate decision.
func TestErrorMessageClearedAfterSettlement(t *testing.T) {
	results := map[string]services.FetchResult{
		"ok":             {Outcome: data.OutcomeOK, ReplaceMovies: true, Movies: []data.Movie{{ID: 1}}},
		"status":         {Outcome: data.OutcomeStatus, ErrorMessage: services.MsgFetchFailed},
		"exception":      {Outcome: data.OutcomeException, ErrorMessage: services.MsgFetchErrored},
		"failure signal": {Outcome: data.OutcomeFailureSignal, ReplaceMovies: true, Movies: []data.Movie{}, ErrorMessage: "no results"},
	}

	for name, res := range results {
		t.Run(name, func(t *testing.T) {
			fetcher := &mockFetcher{fetchFunc: func(context.Context) services.FetchResult { return res }}
			screen := NewRootScreen(fetcher, testImageBase, nil)

			screen.Update(fetchMsg(t, screen.Init()))

			assert.Empty(t, screen.ErrorMessage())
			assert.False(t, screen.Loading())
		})
	}
}

func TestFailuresKeepOrClearList(t *testing.T) {
	previous := []data.Movie{{ID: 9, Title: "Old"}}

	t.Run("status keeps list", func(t *testing.T) {
		fetcher := &mockFetcher{fetchFunc: func(context.Context) services.FetchResult {
			return services.FetchResult{Outcome: data.OutcomeStatus, ErrorMessage: services.MsgFetchFailed}
		}}
		screen := NewRootScreen(fetcher, testImageBase, nil)
		screen.movies = previous

		screen.Update(fetchMsg(t, screen.Init()))
		assert.Equal(t, previous, screen.Movies())
	})

	t.Run("failure signal clears list", func(t *testing.T) {
		fetcher := &mockFetcher{fetchFunc: func(context.Context) services.FetchResult {
			return services.FetchResult{Outcome: data.OutcomeFailureSignal, ReplaceMovies: true, Movies: []data.Movie{}, ErrorMessage: "x"}
		}}
		screen := NewRootScreen(fetcher, testImageBase, nil)
		screen.movies = previous

		screen.Update(fetchMsg(t, screen.Init()))
		assert.Empty(t, screen.Movies())
	})
}

func TestRenderSelectionPrefersErrorOverList(t *testing.T) {
	screen := NewRootScreen(&mockFetcher{}, testImageBase, nil)
	screen.Update(tea.WindowSizeMsg{Width: 100, Height: 200})
	screen.movies = []data.Movie{{ID: 1, Title: "Heat"}}
	screen.list.SetItems(screen.movies)

	screen.errorMessage = "something broke"
	view := screen.View()
	assert.Contains(t, view, "something broke")
	assert.NotContains(t, view, "Heat")

	screen.loading = true
	view = screen.View()
	assert.Contains(t, view, "▒")
	assert.NotContains(t, view, "something broke")
}

func TestCloseDropsLateResult(t *testing.T) {
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context) services.FetchResult {
		return services.FetchResult{Outcome: data.OutcomeOK, ReplaceMovies: true, Movies: []data.Movie{{ID: 1}}}
	}}
	screen := NewRootScreen(fetcher, testImageBase, nil)
	cmd := screen.Init()

	screen.Close()
	screen.Update(fetchMsg(t, cmd))

	assert.Empty(t, screen.Movies())
}

func TestEscQuitsAndCancelsFetch(t *testing.T) {
	var fetchCtx context.Context
	fetcher := &mockFetcher{fetchFunc: func(ctx context.Context) services.FetchResult {
		fetchCtx = ctx
		return services.FetchResult{Outcome: data.OutcomeCancelled, Err: ctx.Err()}
	}}
	screen := NewRootScreen(fetcher, testImageBase, nil)
	cmd := screen.Init()

	_, quit := screen.Update(tea.KeyMsg{Type: tea.KeyEsc})
	require.NotNil(t, quit)
	assert.Equal(t, tea.Quit(), quit())

	fetchMsg(t, cmd)
	require.NotNil(t, fetchCtx)
	assert.ErrorIs(t, fetchCtx.Err(), context.Canceled)
}

func TestArrowKeysScrollList(t *testing.T) {
	screen := NewRootScreen(&mockFetcher{}, testImageBase, nil)
	screen.list.SetItems([]data.Movie{{ID: 1}, {ID: 2}})

	screen.Update(tea.KeyMsg{Type: tea.KeyDown})
	assert.Equal(t, 1, screen.list.SelectedIndex)
	screen.Update(tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 0, screen.list.SelectedIndex)
	assert.Empty(t, screen.SearchTerm(), "arrows are not typed into the search")
}
