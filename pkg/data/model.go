package data

import "time"

// Movie is one entry of the catalog's discovery results. It is passed
// through from the response to the screen without normalization.
type Movie struct {
	ID               int64   `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview"`
	PosterPath       string  `json:"poster_path"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count"`
	Popularity       float64 `json:"popularity"`
	OriginalLanguage string  `json:"original_language"`
}

// Year returns the four digit year of the release date, or "" if the
// date is missing or malformed.
func (m Movie) Year() string {
	if len(m.ReleaseDate) < 4 {
		return ""
	}
	return m.ReleaseDate[:4]
}

type Outcome string

const (
	OutcomeOK            Outcome = "ok"
	OutcomeStatus        Outcome = "status"
	OutcomeFailureSignal Outcome = "failure_signal"
	OutcomeException     Outcome = "exception"
	OutcomeCancelled     Outcome = "cancelled"
)

// FetchRecord is one row of the fetch journal.
type FetchRecord struct {
	ID         int64
	FetchedAt  time.Time
	Outcome    Outcome
	Count      int
	Error      string // message set before the settlement clear
	DurationMS int64
}
