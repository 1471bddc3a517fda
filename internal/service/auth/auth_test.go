package auth

import (
	"testing"
	"time"

	"autolot-service/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte("rtec2024"), bcrypt.MinCost)
	require.NoError(t, err)
	tokens := token.NewManager("test-secret", "autolot-service", "autolot-admin", time.Hour)
	return NewService("staff@example.com", string(hash), tokens, zap.NewNop())
}

func TestLoginSuccess(t *testing.T) {
	s := newTestService(t)

	signed, err := s.Login("staff@example.com", "rtec2024")
	require.NoError(t, err)
	require.NotEmpty(t, signed)

	email, err := s.Verify(signed)
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", email)
}

func TestLoginWrongPassword(t *testing.T) {
	s := newTestService(t)

	_, err := s.Login("staff@example.com", "wrong")
	assert.Error(t, err)
}

func TestLoginUnknownEmail(t *testing.T) {
	s := newTestService(t)

	_, err := s.Login("intruder@example.com", "rtec2024")
	assert.Error(t, err)
}

func TestVerifyRejectsTampered(t *testing.T) {
	s := newTestService(t)

	_, err := s.Verify("bogus.token.value")
	assert.Error(t, err)
}
