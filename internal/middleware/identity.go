package middleware

// identity.go defines helper functions shared across middleware files.
// Currently it provides a user identifier extraction used to build
// per-user rate-limit keys. When no user is authenticated, "anon" is
// returned so guests share one bucket per IP.

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts a user identifier from the request context.
// JWTAuth stores the raw "sub" claim under "user_id"; depending on how
// the token was minted the claim can be a string or a JSON number.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	}
	return "anon"
}
