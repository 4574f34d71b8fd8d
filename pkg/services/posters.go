package services

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/kerbaras/movies/pkg/data"
	"github.com/kerbaras/movies/pkg/integrations"
	"github.com/kerbaras/movies/pkg/sources"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"
)

const (
	defaultPosterRate = 4 // requests per second
	maxConcurrent     = 3
)

// PosterDownloader fetches and shrinks posters for a movie list.
type PosterDownloader struct {
	imageBaseURL string
	client       *http.Client
	limiter      *rate.Limiter
	processor    *integrations.ImageProcessor
	logger       *slog.Logger
}

func NewPosterDownloader(imageBaseURL string, logger *slog.Logger) *PosterDownloader {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &PosterDownloader{
		imageBaseURL: imageBaseURL,
		client:       &http.Client{Timeout: 15 * time.Second},
		limiter:      rate.NewLimiter(rate.Limit(defaultPosterRate), 1),
		processor:    integrations.NewImageProcessor(integrations.DefaultPosterSettings()),
		logger:       logger,
	}
}

// DownloadAll fetches every available poster. Individual failures are
// logged and skipped; only cancellation aborts the batch.
func (d *PosterDownloader) DownloadAll(ctx context.Context, movies []data.Movie) (map[int64][]byte, error) {
	var (
		mu      sync.Mutex
		posters = make(map[int64][]byte)
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrent)

	for _, movie := range movies {
		url := sources.PosterURL(d.imageBaseURL, movie.PosterPath)
		if url == "" {
			continue
		}
		g.Go(func() error {
			if err := d.limiter.Wait(ctx); err != nil {
				return err
			}
			img, err := d.download(ctx, url)
			if err != nil {
				if ctx.Err() != nil {
					return ctx.Err()
				}
				d.logger.Warn("poster skipped", "movie", movie.Title, "error", err)
				return nil
			}
			mu.Lock()
			posters[movie.ID] = img
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return posters, nil
}

func (d *PosterDownloader) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := d.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch poster: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("bad status: %s", resp.Status)
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read poster: %w", err)
	}
	return d.processor.ProcessPoster(raw)
}
