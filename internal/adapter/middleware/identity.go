package middleware

import (
	"net/http"
	"strings"

	"lombard-backend/internal/domain/user"

	"github.com/labstack/echo/v4"
)

// Identity is what the external identity provider asserts per request.
// Verification happened upstream; this middleware only extracts and
// sanity-checks the asserted headers.
type Identity struct {
	UserID      string
	Role        user.Role
	AccountType string
}

const identityContextKey = "identity"

// IdentityFrom returns the request identity set by RequireIdentity.
func IdentityFrom(c echo.Context) (Identity, bool) {
	id, ok := c.Get(identityContextKey).(Identity)
	return id, ok
}

// RequireIdentity extracts Ax-User-Id / Ax-User-Role / Ax-Account-Type and
// rejects requests without a well-formed identity.
func RequireIdentity() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := strings.TrimSpace(c.Request().Header.Get("Ax-User-Id"))
			if userID == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing Ax-User-Id"})
			}
			if !reHex32.MatchString(userID) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid Ax-User-Id"})
			}

			role := user.Role(strings.ToLower(strings.TrimSpace(c.Request().Header.Get("Ax-User-Role"))))
			if !role.Valid() {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid Ax-User-Role"})
			}

			accountType := strings.TrimSpace(c.Request().Header.Get("Ax-Account-Type"))
			if accountType == "" {
				accountType = string(role)
			}

			c.Set(identityContextKey, Identity{UserID: userID, Role: role, AccountType: accountType})
			return next(c)
		}
	}
}
