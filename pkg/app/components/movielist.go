package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/movies/pkg/app/styles"
	"github.com/kerbaras/movies/pkg/data"
)

// cardHeight is the rendered height of one card including its margin.
const cardHeight = 8

// MovieList renders one card per movie in list order and scrolls a
// selection through them.
type MovieList struct {
	Items         []data.Movie
	ImageBaseURL  string
	SelectedIndex int
	Width         int
	Height        int
}

func NewMovieList(imageBaseURL string) *MovieList {
	return &MovieList{
		Items:         []data.Movie{},
		ImageBaseURL:  imageBaseURL,
		SelectedIndex: 0,
		Width:         80,
		Height:        20,
	}
}

func (m *MovieList) SetItems(items []data.Movie) {
	m.Items = items
	if m.SelectedIndex >= len(items) && len(items) > 0 {
		m.SelectedIndex = len(items) - 1
	}
	if len(items) == 0 {
		m.SelectedIndex = 0
	}
}

// Keys returns the movie IDs in render order.
func (m *MovieList) Keys() []int64 {
	keys := make([]int64, len(m.Items))
	for i, movie := range m.Items {
		keys[i] = movie.ID
	}
	return keys
}

func (m *MovieList) Next() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex++
	if m.SelectedIndex >= len(m.Items) {
		m.SelectedIndex = 0
	}
}

func (m *MovieList) Prev() {
	if len(m.Items) == 0 {
		return
	}
	m.SelectedIndex--
	if m.SelectedIndex < 0 {
		m.SelectedIndex = len(m.Items) - 1
	}
}

func (m *MovieList) Selected() *data.Movie {
	if len(m.Items) == 0 || m.SelectedIndex >= len(m.Items) {
		return nil
	}
	return &m.Items[m.SelectedIndex]
}

// window returns the [start, end) range of cards that fit the height,
// keeping the selection visible.
func (m *MovieList) window() (int, int) {
	visible := m.Height / cardHeight
	if visible < 1 {
		visible = 1
	}
	if len(m.Items) <= visible {
		return 0, len(m.Items)
	}

	start := m.SelectedIndex - visible/2
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > len(m.Items) {
		end = len(m.Items)
		start = end - visible
	}
	return start, end
}

func (m *MovieList) View() string {
	if len(m.Items) == 0 {
		emptyMsg := styles.MutedStyle.Render("No movies found")
		return lipgloss.Place(m.Width, 3, lipgloss.Center, lipgloss.Center, emptyMsg)
	}

	start, end := m.window()

	var b strings.Builder
	for i := start; i < end; i++ {
		card := NewMovieCard(m.Items[i], m.ImageBaseURL)
		card.Width = m.Width - 4
		card.Active = i == m.SelectedIndex
		b.WriteString(card.View())
		b.WriteString("\n")
	}
	return b.String()
}
