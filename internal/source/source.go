// Package source loads the initial customer collection from the configured
// ingress: the embedded seed file, an HTTP endpoint or a Postgres table.
package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/JonMunkholm/CRM/internal/config"
	"github.com/JonMunkholm/CRM/internal/core"
)

// Open returns the source selected by cfg.Source.Kind. The returned close
// function releases any connections and is never nil.
func Open(ctx context.Context, cfg *config.Config) (core.CustomerSource, func(), error) {
	var (
		src     core.CustomerSource
		closeFn = func() {}
	)

	switch strings.ToLower(cfg.Source.Kind) {
	case config.SourceSeed, "":
		src = Seed{}
	case config.SourceHTTP:
		src = NewHTTP(cfg.Source.URL, nil)
	case config.SourcePostgres:
		pg, err := NewPostgres(ctx, cfg.Database, cfg.Source.Query)
		if err != nil {
			return nil, closeFn, err
		}
		src, closeFn = pg, pg.Close
	default:
		return nil, closeFn, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	return WithTimeout(src, cfg.Source.Timeout), closeFn, nil
}

// WithTimeout bounds every fetch from src by d. A non-positive d returns
// src unchanged.
func WithTimeout(src core.CustomerSource, d time.Duration) core.CustomerSource {
	if d <= 0 {
		return src
	}
	return timeoutSource{src: src, timeout: d}
}

type timeoutSource struct {
	src     core.CustomerSource
	timeout time.Duration
}

func (t timeoutSource) FetchCustomers(ctx context.Context) ([]core.Customer, error) {
	ctx, cancel := context.WithTimeout(ctx, t.timeout)
	defer cancel()
	return t.src.FetchCustomers(ctx)
}

// Decode reads a JSON array of customers in the ingress format.
func Decode(r io.Reader) ([]core.Customer, error) {
	var items []core.Customer
	if err := json.NewDecoder(r).Decode(&items); err != nil {
		return nil, fmt.Errorf("decode customers: %w", err)
	}
	if items == nil {
		items = []core.Customer{}
	}
	return items, nil
}
