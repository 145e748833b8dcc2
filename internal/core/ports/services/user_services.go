package services

import (
	"context"

	"github.com/hoteldesk/folio-backend/internal/core/domain"
	"github.com/hoteldesk/folio-backend/internal/dto"
)

// UserSvcFacade exposes operator account operations.
type UserSvcFacade interface {
	// CreateUser registers an operator with a bcrypt-hashed password.
	CreateUser(ctx context.Context, req dto.CreateUserRequest, actorID string) (*domain.User, error)

	// GetUser retrieves an operator.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// Authenticate verifies credentials and returns the user on success.
	Authenticate(ctx context.Context, email, password string) (*domain.User, error)
}
