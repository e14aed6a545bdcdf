// Package rates converts prices between currencies using a rate table that is
// read from Postgres and cached in Redis for a bounded time.
package rates

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"stayledger/internal/pkg/config"
	"stayledger/internal/pkg/errs"
)

const cacheKey = "rates:v1"

type Cache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
}

type Source interface {
	LoadAll(ctx context.Context) (map[string]float64, error)
}

type Provider struct {
	cache  Cache
	source Source
	ttl    time.Duration
}

func NewProvider(cache Cache, source Source, cfg config.RedisConfig) *Provider {
	return &Provider{cache: cache, source: source, ttl: cfg.RatesTTL}
}

// Convert returns amount expressed in to, using rate(to)/rate(from). The
// result is not rounded.
func (p *Provider) Convert(ctx context.Context, from, to string, amount int64) (float64, error) {
	from, to = strings.ToUpper(from), strings.ToUpper(to)
	if from == to {
		return float64(amount), nil
	}

	table, err := p.table(ctx)
	if err != nil {
		return 0, err
	}
	fromRate, ok := table[from]
	if !ok || fromRate <= 0 {
		return 0, errs.Wrapf(errs.ErrUnknownCurrency, "currency %q", from)
	}
	toRate, ok := table[to]
	if !ok || toRate <= 0 {
		return 0, errs.Wrapf(errs.ErrUnknownCurrency, "currency %q", to)
	}
	return float64(amount) * toRate / fromRate, nil
}

// Refresh reloads the table from the source and replaces the cached copy.
func (p *Provider) Refresh(ctx context.Context) (map[string]float64, error) {
	table, err := p.source.LoadAll(ctx)
	if err != nil {
		return nil, errs.Wrap(err, "load exchange rates")
	}
	if err := p.cache.Set(ctx, cacheKey, table, p.ttl); err != nil {
		slog.Warn("failed to cache exchange rates", "error", err)
	}
	return table, nil
}

func (p *Provider) table(ctx context.Context) (map[string]float64, error) {
	var table map[string]float64
	hit, err := p.cache.Get(ctx, cacheKey, &table)
	if err != nil {
		slog.Warn("exchange rate cache unavailable, reading source", "error", err)
	}
	if hit {
		return table, nil
	}
	return p.Refresh(ctx)
}
