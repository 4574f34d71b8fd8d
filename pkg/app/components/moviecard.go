package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/kerbaras/movies/pkg/app/styles"
	"github.com/kerbaras/movies/pkg/data"
	"github.com/kerbaras/movies/pkg/sources"
)

// PlaceholderPoster stands in for movies without a poster path.
const PlaceholderPoster = "no-movie.png"

// MovieCard displays one movie. It has no state and no interactivity.
type MovieCard struct {
	Movie        data.Movie
	ImageBaseURL string
	Width        int
	Active       bool
}

func NewMovieCard(movie data.Movie, imageBaseURL string) MovieCard {
	return MovieCard{Movie: movie, ImageBaseURL: imageBaseURL, Width: 60}
}

// Poster returns the poster URL, or the placeholder reference.
func (c MovieCard) Poster() string {
	if url := sources.PosterURL(c.ImageBaseURL, c.Movie.PosterPath); url != "" {
		return url
	}
	return PlaceholderPoster
}

func (c MovieCard) Rating() string {
	if c.Movie.VoteAverage == 0 {
		return "N/A"
	}
	return fmt.Sprintf("%.1f", c.Movie.VoteAverage)
}

func (c MovieCard) Year() string {
	if year := c.Movie.Year(); year != "" {
		return year
	}
	return "N/A"
}

func (c MovieCard) Language() string {
	return strings.ToUpper(c.Movie.OriginalLanguage)
}

func (c MovieCard) View() string {
	cardStyle := styles.CardStyle
	if c.Active {
		cardStyle = styles.ActiveCardStyle
	}

	title := styles.TitleStyle.Render(c.Movie.Title)

	meta := lipgloss.JoinHorizontal(
		lipgloss.Top,
		styles.RatingStyle.Render("★ "+c.Rating()),
		styles.MutedStyle.Render(" • "+c.Language()+" • "+c.Year()),
	)

	poster := styles.MutedStyle.Render(c.Poster())

	content := lipgloss.JoinVertical(lipgloss.Left, title, meta, poster)

	width := c.Width
	if width < 20 {
		width = 20
	}
	return cardStyle.Width(width).Render(content)
}
