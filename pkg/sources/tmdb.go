package sources

import (
	"context"
	"net/url"
	"strings"
	"time"

	"github.com/kerbaras/movies/pkg/utils"
)

var (
	ErrStatus = utils.ErrStatus
	ErrDecode = utils.ErrDecode
)

type StatusError = utils.StatusError

// Ensure TMDB implements Catalog at compile time.
var _ Catalog = (*TMDB)(nil)

type TMDB struct {
	api *utils.API
}

const (
	DefaultBaseURL = "https://api.themoviedb.org/3"
	discoverPath   = "/discover/movie"
	discoverSort   = "popularity.desc"
)

// NewTMDB builds a client for baseURL authenticating with the bearer
// token apiKey. A zero timeout means no client-side timeout.
func NewTMDB(baseURL, apiKey string, timeout time.Duration) *TMDB {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &TMDB{api: utils.NewAPI(baseURL, apiKey, timeout)}
}

// Discover issues the popularity-sorted discovery request.
func (t *TMDB) Discover(ctx context.Context) (*DiscoverResponse, error) {
	params := url.Values{}
	params.Set("sort_by", discoverSort)

	var out DiscoverResponse
	if err := t.api.Get(ctx, discoverPath, params, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
