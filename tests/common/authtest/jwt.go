//go:build unit || e2e

package authtest

import (
	"testing"
	"time"

	"stayledger/internal/domain/user"
	"stayledger/internal/pkg/config"
	"stayledger/internal/pkg/jwt"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// JWTHelper signs tokens the way the account service does, for tests only.
type JWTHelper struct {
	cfg config.JWTConfig
}

func NewJWTHelper(cfg config.JWTConfig) *JWTHelper {
	return &JWTHelper{cfg: cfg}
}

func (h *JWTHelper) GenerateToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	duration, err := time.ParseDuration(h.cfg.Duration)
	require.NoError(t, err)
	token, err := jwt.NewService(h.cfg.Secret, duration).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}

func (h *JWTHelper) Guest(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.GenerateToken(t, userID, user.RoleGuest)
}

func (h *JWTHelper) Host(t *testing.T, userID uuid.UUID) string {
	t.Helper()
	return h.GenerateToken(t, userID, user.RoleHost)
}

func (h *JWTHelper) CreateExpiredToken(t *testing.T, userID uuid.UUID, role user.Role) string {
	t.Helper()
	token, err := jwt.NewService(h.cfg.Secret, -time.Minute).GenerateToken(userID, role)
	require.NoError(t, err)
	return token
}
