package services

import (
	"context"
	"fmt"

	"github.com/kerbaras/movies/pkg/integrations"
)

const ExportTitle = "Popular Movies"

// ExportEPUB fetches the discovery list and writes it, with posters, to
// outputPath. The fetch is classified and journaled like any other. It
// returns the number of movies written.
func (c *MovieController) ExportEPUB(ctx context.Context, posters *PosterDownloader, outputPath string) (int, error) {
	res := c.FetchMovies(ctx)
	if err := res.Failure(); err != nil {
		return 0, fmt.Errorf("discover failed: %w", err)
	}

	images, err := posters.DownloadAll(ctx, res.Movies)
	if err != nil {
		return 0, fmt.Errorf("poster download failed: %w", err)
	}
	c.logger.Info("posters downloaded", "count", len(images), "movies", len(res.Movies))

	builder, err := integrations.NewEPubBuilder()
	if err != nil {
		return 0, err
	}
	defer builder.Close()

	if err := builder.Build(ExportTitle, res.Movies, images, outputPath); err != nil {
		return 0, err
	}
	return len(res.Movies), nil
}
