package ports

import (
	"context"

	"github.com/caresync/patient-records/internal/core/domain"
)

type AuthService interface {
	Register(ctx context.Context, username, password, role string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (string, *domain.User, error)
}

// TokenService issues and verifies signed, time-limited identity tokens.
// Verify distinguishes the three observable failure modes: missing, expired,
// and invalid (bad signature or malformed).
type TokenService interface {
	Issue(identity domain.Identity) (string, error)
	Verify(raw string) (domain.Identity, error)
}
