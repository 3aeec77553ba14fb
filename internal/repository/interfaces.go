package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/reschool/internal/domain"
)

// ErrNotFound is returned when the requested row does not exist.
var ErrNotFound = errors.New("not found")

// CredentialRepo stores the single remembered account.
type CredentialRepo interface {
	Get(ctx context.Context) (*domain.Credentials, error)
	Save(ctx context.Context, c *domain.Credentials) error
	UpdateSession(ctx context.Context, sessionID string) error
	Delete(ctx context.Context) error
}
