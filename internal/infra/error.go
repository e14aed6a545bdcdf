package infra

import (
	"context"
	"errors"
	"log/slog"

	"stayledger/internal/pkg/errs"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type RepositoryErrorKind string

type RepositoryError struct {
	Kind RepositoryErrorKind
	msg  string
	err  error // wrapped low-level error
}

func (e RepositoryError) Error() string {
	if e.err != nil {
		return string(e.Kind) + ": " + e.msg + ": " + e.err.Error()
	}
	return string(e.Kind) + ": " + e.msg
}

func (e RepositoryError) Unwrap() error {
	return e.err
}

// WrapRepoErr classifies err by its Postgres error code. The low-level error
// stays reachable through Unwrap so the unit of work can still see SQLSTATE.
func WrapRepoErr(msg string, err error) error {
	kind := Classify(err)

	level := slog.LevelError
	if kind == KindConflict || kind == KindNotFound {
		level = slog.LevelDebug
	}
	slog.Log(context.Background(), level, "Repository error: "+msg,
		slog.String("kind", string(kind)),
		slog.Any("error", err),
	)

	if err != nil {
		err = errs.Wrap(err, msg)
	}
	return RepositoryError{Kind: kind, msg: msg, err: err}
}

func IsKind(err error, kind RepositoryErrorKind) bool {
	var e RepositoryError
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func Classify(err error) RepositoryErrorKind {
	if errors.Is(err, pgx.ErrNoRows) {
		return KindNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return KindDBFailure
	}
	switch pgErr.Code {
	case PgErrUniqueViolation:
		return KindDuplicateKey
	case PgErrForeignKeyViolation:
		return KindForeignKeyViolated
	case PgErrExclusionViolation, PgErrSerializationFailure, PgErrDeadlockDetected, PgErrLockNotAvailable:
		return KindConflict
	default:
		return KindDBFailure
	}
}

// Infrastructure-specific error kinds
const (
	KindNotFound           RepositoryErrorKind = "NOT_FOUND"
	KindDBFailure          RepositoryErrorKind = "DB_FAILURE"
	KindDuplicateKey       RepositoryErrorKind = "DUPLICATE_KEY"
	KindForeignKeyViolated RepositoryErrorKind = "FOREIGN_KEY_VIOLATED"
	KindConflict           RepositoryErrorKind = "CONFLICT"
)

// Postgres SQLSTATE codes the repositories care about
const (
	PgErrUniqueViolation      = "23505"
	PgErrForeignKeyViolation  = "23503"
	PgErrExclusionViolation   = "23P01"
	PgErrSerializationFailure = "40001"
	PgErrDeadlockDetected     = "40P01"
	PgErrLockNotAvailable     = "55P03"
)
