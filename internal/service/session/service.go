// Package session issues guest owner ids so anonymous shoppers get an
// explicit cart/order scope instead of an implicit current user.
package session

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid token")

type Service struct {
	tokens *tokenManager
	ttl    time.Duration
}

func New() *Service {
	return &Service{
		tokens: newTokenManager(),
		ttl:    30 * 24 * time.Hour,
	}
}

// Issue creates a fresh guest owner id and an opaque token bound to it.
func (s *Service) Issue(ctx context.Context) (token, ownerID string, err error) {
	ownerID = "guest-" + uuid.NewString()
	token, err = s.tokens.Issue(ownerID, s.ttl)
	if err != nil {
		return "", "", err
	}
	return token, ownerID, nil
}

// LookupByToken resolves a guest token back to its owner id.
func (s *Service) LookupByToken(ctx context.Context, token string) (string, error) {
	meta, ok := s.tokens.Validate(token)
	if !ok {
		return "", ErrInvalidToken
	}
	return meta.OwnerID, nil
}

// TTLSeconds exposes the session lifetime in seconds.
func (s *Service) TTLSeconds() int {
	return int(s.ttl.Seconds())
}
