package services

import (
	"context"

	"github.com/kerbaras/movies/pkg/data"
	"github.com/kerbaras/movies/pkg/sources"
)

type mockCatalog struct {
	discoverFunc func(ctx context.Context) (*sources.DiscoverResponse, error)
	calls        int
}

func (m *mockCatalog) Discover(ctx context.Context) (*sources.DiscoverResponse, error) {
	m.calls++
	if m.discoverFunc != nil {
		return m.discoverFunc(ctx)
	}
	return &sources.DiscoverResponse{}, nil
}

type mockJournal struct {
	records []*data.FetchRecord
	err     error
}

func (m *mockJournal) RecordFetch(rec *data.FetchRecord) error {
	m.records = append(m.records, rec)
	return m.err
}
