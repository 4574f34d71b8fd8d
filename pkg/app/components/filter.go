package components

import (
	"strings"

	"github.com/kerbaras/movies/pkg/data"
)

// FilterMovies returns the movies whose title contains term, ignoring
// case, in their original order. A blank term returns movies unchanged.
// The screen does not apply it; the search text only drives the input.
func FilterMovies(term string, movies []data.Movie) []data.Movie {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return movies
	}

	out := make([]data.Movie, 0, len(movies))
	for _, m := range movies {
		if strings.Contains(strings.ToLower(m.Title), term) {
			out = append(out, m)
		}
	}
	return out
}
