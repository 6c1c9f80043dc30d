package middleware

import (
	"net/http"
	"strings"

	"kebab-shop-demo/internal/service"

	"github.com/labstack/echo/v4"
)

const (
	// AccountIDKey is where the resolved account id lives in the echo context.
	AccountIDKey = "account_id"
	// TokenCookie is the fallback session cookie name.
	TokenCookie = "authToken"
)

type AuthMiddleware struct {
	auth service.AuthService
}

func NewAuthMiddleware(auth service.AuthService) *AuthMiddleware {
	return &AuthMiddleware{auth: auth}
}

// Require resolves the session token and injects the account id, rejecting
// the request with 401 when no valid session is presented.
func (m *AuthMiddleware) Require() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			account, err := m.auth.Resolve(c.Request().Context(), TokenFromRequest(c))
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, service.ErrNotAuthenticated.Error())
			}

			c.Set(AccountIDKey, account.ID)
			return next(c)
		}
	}
}

// AccountID reads the account id injected by Require.
func AccountID(c echo.Context) uint {
	id, _ := c.Get(AccountIDKey).(uint)
	return id
}

// TokenFromRequest extracts the session token from the Authorization header,
// falling back to the session cookie.
func TokenFromRequest(c echo.Context) string {
	header := c.Request().Header.Get(echo.HeaderAuthorization)
	if token, ok := strings.CutPrefix(header, "Bearer "); ok {
		return token
	}
	if cookie, err := c.Cookie(TokenCookie); err == nil {
		return cookie.Value
	}
	return ""
}
