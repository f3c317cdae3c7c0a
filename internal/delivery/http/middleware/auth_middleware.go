package middleware

import (
	"strings"

	deliverycontext "roster/internal/delivery/context"
	domainerrors "roster/internal/domain/errors"
	"roster/internal/domain/service"

	"github.com/labstack/echo/v4"
)

// AuthMiddleware guards routes behind bearer-token authentication.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the bearer token on the Authorization header and
// stores the authenticated user's id on the request context. Verification
// failures propagate to the central error handler, which renders 401 with
// the token error's business code (expired tokens stay distinguishable so
// clients know to re-authenticate).
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader || tokenString == "" {
			return domainerrors.ErrUnauthorized.WrapMessage("Authorization header must be a Bearer token")
		}

		userID, err := m.tokenSvc.Verify(tokenString)
		if err != nil {
			return err
		}

		c.Set(string(deliverycontext.KeyUserID), userID)

		ctx := deliverycontext.WithUserID(c.Request().Context(), userID)
		c.SetRequest(c.Request().WithContext(ctx))

		return next(c)
	}
}
