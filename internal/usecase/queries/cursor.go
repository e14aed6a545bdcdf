package queries

import (
	"encoding/base64"
	"strconv"
	"strings"
	"time"

	"stayledger/internal/pkg/errs"
	"stayledger/internal/usecase/shared"

	"github.com/google/uuid"
)

const (
	DefaultListLimit = 20
	MaxListLimit     = 200
	CursorVersionV1  = "v1"
)

var ErrInvalidCursor = errs.New("invalid cursor")

// Uses microsecond precision to align with PostgreSQL timestamp precision
func EncodeAfterCursor(t time.Time, id uuid.UUID) string {
	cursorData := CursorVersionV1 + ":" + strconv.FormatInt(t.UnixMicro(), 10) + "-" + id.String()
	return base64.URLEncoding.EncodeToString([]byte(cursorData))
}

func DecodeAfterCursor(cursor string) (*shared.PageKey, error) {
	if cursor == "" {
		return nil, nil
	}

	decoded, err := base64.URLEncoding.DecodeString(cursor)
	if err != nil {
		return nil, errs.Mark(err, ErrInvalidCursor)
	}
	payload, ok := strings.CutPrefix(string(decoded), CursorVersionV1+":")
	if !ok {
		return nil, errs.Wrap(ErrInvalidCursor, "unknown cursor version")
	}

	micros, rawID, ok := strings.Cut(payload, "-")
	if !ok {
		return nil, errs.Wrap(ErrInvalidCursor, "expected '<micros>-<uuid>'")
	}
	timestamp, err := strconv.ParseInt(micros, 10, 64)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "invalid timestamp"), ErrInvalidCursor)
	}
	id, err := uuid.Parse(rawID)
	if err != nil {
		return nil, errs.Mark(errs.Wrap(err, "invalid UUID"), ErrInvalidCursor)
	}

	return &shared.PageKey{CreatedAt: time.UnixMicro(timestamp).UTC(), ID: id}, nil
}

func ValidateLimit(limit int) int {
	if limit <= 0 {
		return DefaultListLimit
	}
	if limit > MaxListLimit {
		return MaxListLimit
	}
	return limit
}
