package ports

import (
	"context"

	"github.com/caresync/patient-records/internal/core/domain"
)

// UserRepository defines the interface for credential persistence.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
}
