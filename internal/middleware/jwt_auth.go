package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/nanomedia/social-backend/internal/models"
)

const (
	// ClaimsKey holds the *models.JwtCustomClaims of the authenticated request.
	ClaimsKey = "user"
	// TokenKey holds the raw bearer token.
	TokenKey = "token"
)

// TokenParser validates a bearer token and returns its claims.
type TokenParser interface {
	ParseToken(ctx context.Context, token string) (*models.JwtCustomClaims, error)
}

// JWTAuthMiddleware checks for a valid, unrevoked JWT and stores its claims in the context.
func JWTAuthMiddleware(parser TokenParser) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Missing Authorization header")
			}

			// Expecting "Bearer <token>"
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid Authorization header format")
			}
			tokenString := parts[1]

			claims, err := parser.ParseToken(c.Request().Context(), tokenString)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
			}

			c.Set(ClaimsKey, claims)
			c.Set(TokenKey, tokenString)
			return next(c)
		}
	}
}

// UserID returns the id of the authenticated user, or 0 outside JWTAuthMiddleware.
func UserID(c echo.Context) uint {
	claims, ok := c.Get(ClaimsKey).(*models.JwtCustomClaims)
	if !ok {
		return 0
	}
	return claims.UserID
}

// Token returns the raw bearer token of the request.
func Token(c echo.Context) string {
	token, _ := c.Get(TokenKey).(string)
	return token
}
