package repository

import (
	"context"

	"stayledger/internal/infra"
	"stayledger/internal/infra/db"

	"github.com/jackc/pgx/v5"
)

// ExchangeRateRepository reads the rate table maintained by the finance
// service. Rates are units of currency per one anchor unit.
type ExchangeRateRepository struct {
	db db.DBTX
}

func NewExchangeRateRepository(dbtx db.DBTX) *ExchangeRateRepository {
	return &ExchangeRateRepository{db: dbtx}
}

func (r *ExchangeRateRepository) LoadAll(ctx context.Context) (map[string]float64, error) {
	const query = `SELECT currency, rate::float8 FROM exchange_rate`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load exchange rates", err)
	}

	rates := make(map[string]float64)
	var (
		currency string
		rate     float64
	)
	_, err = pgx.ForEachRow(rows, []any{&currency, &rate}, func() error {
		rates[currency] = rate
		return nil
	})
	if err != nil {
		return nil, infra.WrapRepoErr("failed to scan exchange rates", err)
	}
	return rates, nil
}
