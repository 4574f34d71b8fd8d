package sources

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/kerbaras/movies/pkg/data"
)

// DiscoverResponse is the body of the discovery endpoint. Response and
// Error follow the legacy failure-signal convention of other movie APIs:
// Response == "False" inside a 200 body means the request failed.
type DiscoverResponse struct {
	Page         int          `json:"page"`
	Results      []data.Movie `json:"results"`
	TotalPages   int          `json:"total_pages"`
	TotalResults int          `json:"total_results"`

	// Only the exact keys "Response" and "Error" carry the signal, and only
	// string values count. encoding/json folds key case, so these are read
	// from the raw object in UnmarshalJSON.
	Response string `json:"-"`
	Error    string `json:"-"`
}

func (r *DiscoverResponse) UnmarshalJSON(b []byte) error {
	type body DiscoverResponse
	var out body
	if err := json.Unmarshal(b, &out); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	out.Response = stringField(raw, "Response")
	out.Error = stringField(raw, "Error")

	*r = DiscoverResponse(out)
	return nil
}

func stringField(raw map[string]json.RawMessage, key string) string {
	var s string
	if v, ok := raw[key]; ok && json.Unmarshal(v, &s) == nil {
		return s
	}
	return ""
}

// Failed reports whether the body carries the failure signal.
func (r *DiscoverResponse) Failed() bool {
	return r != nil && r.Response == "False"
}

type Catalog interface {
	Discover(ctx context.Context) (*DiscoverResponse, error)
}

const (
	DefaultImageBaseURL = "https://image.tmdb.org/t/p"
	PosterSize          = "w500"
)

// PosterURL resolves a poster path against the image base URL. It returns
// "" when the movie has no poster.
func PosterURL(imageBaseURL, posterPath string) string {
	if posterPath == "" {
		return ""
	}
	return strings.TrimRight(imageBaseURL, "/") + "/" + PosterSize + posterPath
}
