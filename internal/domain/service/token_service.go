package service

import "time"

// TokenService defines the interface for issuing and verifying bearer tokens.
// This abstracts the details of token creation from the use cases.
type TokenService interface {
	// Issue creates a signed, time-limited token for the given user ID.
	Issue(userID int64) (string, error)

	// Verify checks a token string and returns the subject user ID. Failures
	// are one of domainerrors.ErrTokenMalformed, ErrTokenSignatureInvalid, or
	// ErrTokenExpired.
	Verify(tokenString string) (int64, error)

	// TTL returns the configured token lifetime.
	TTL() time.Duration
}
