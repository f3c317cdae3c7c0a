// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import (
	"context"

	"roster/internal/domain/entity"
)

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
	Nama     string
}

// LoginInput defines the data required for a user to log in.
type LoginInput struct {
	Username string
	Password string
}

// UpdateUserInput carries a partial profile update. Nil fields keep the
// stored value.
type UpdateUserInput struct {
	Username *string
	Email    *string
	Nama     *string
}

// --- Output DTOs ---

// RegisterOutput returns the newly created user's public view.
type RegisterOutput struct {
	User entity.PublicView
}

// LoginOutput returns the issued access token after a successful login.
type LoginOutput struct {
	AccessToken string
	User        entity.PublicView
}

// AccountUsecase defines the interface for account-related business operations.
// This is the contract that the delivery layer (e.g., HTTP handlers) depends on.
type AccountUsecase interface {
	Register(ctx context.Context, input RegisterInput) (*RegisterOutput, error)
	Login(ctx context.Context, input LoginInput) (*LoginOutput, error)
	ListUsers(ctx context.Context) ([]entity.PublicView, error)
	UpdateUser(ctx context.Context, id int64, input UpdateUserInput) (*entity.PublicView, error)
	DeleteUser(ctx context.Context, id int64) error
}
