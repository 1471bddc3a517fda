// Package auth implements the admin panel login. There is a single staff
// account; credentials are fixed at deploy time, not stored in any user
// table.
package auth

import (
	xerrors "autolot-service/internal/pkg/errors"
	"autolot-service/internal/pkg/token"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type Service struct {
	adminEmail   string
	passwordHash string
	tokens       *token.Manager
	logger       *zap.Logger
}

func NewService(adminEmail, passwordHash string, tokens *token.Manager, logger *zap.Logger) *Service {
	return &Service{
		adminEmail:   adminEmail,
		passwordHash: passwordHash,
		tokens:       tokens,
		logger:       logger,
	}
}

// Login checks the supplied credentials against the configured account and
// returns a session token.
func (s *Service) Login(email, password string) (string, error) {
	if email != s.adminEmail {
		return "", xerrors.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
		return "", xerrors.ErrUnauthorized
	}

	signed, err := s.tokens.Generate(email)
	if err != nil {
		s.logger.Error("failed to issue session token", zap.Error(err))
		return "", xerrors.ErrInternal
	}
	return signed, nil
}

// Verify validates a session token and returns the account email.
func (s *Service) Verify(tokenString string) (string, error) {
	claims, err := s.tokens.Verify(tokenString)
	if err != nil {
		return "", xerrors.ErrUnauthorized
	}
	return claims.Email, nil
}
