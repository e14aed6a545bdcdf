//go:build unit

package infra_test

import (
	"errors"
	"testing"

	"stayledger/internal/infra"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want infra.RepositoryErrorKind
	}{
		{"no rows", pgx.ErrNoRows, infra.KindNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, infra.KindDuplicateKey},
		{"foreign key", &pgconn.PgError{Code: "23503"}, infra.KindForeignKeyViolated},
		{"overlapping range", &pgconn.PgError{Code: "23P01"}, infra.KindConflict},
		{"serialization failure", &pgconn.PgError{Code: "40001"}, infra.KindConflict},
		{"deadlock", &pgconn.PgError{Code: "40P01"}, infra.KindConflict},
		{"other sqlstate", &pgconn.PgError{Code: "42P01"}, infra.KindDBFailure},
		{"not a pg error", errors.New("connection reset"), infra.KindDBFailure},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, infra.Classify(tc.err))
		})
	}
}

func TestWrapRepoErr_KeepsSQLState(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "40001", Message: "could not serialize access"}
	err := infra.WrapRepoErr("update booking status", pgErr)

	assert.True(t, infra.IsKind(err, infra.KindConflict))
	assert.False(t, infra.IsKind(err, infra.KindNotFound))

	var got *pgconn.PgError
	assert.True(t, errors.As(err, &got))
	assert.Equal(t, "40001", got.Code)
	assert.Contains(t, err.Error(), "update booking status")
}
