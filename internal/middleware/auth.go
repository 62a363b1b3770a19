package middleware

import (
	"net/http"

	"freight-booking/internal/models"
	"freight-booking/pkg/token"

	jwt "github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
)

// Authenticated validates the bearer token and exposes userID, userRole and
// userEmail on the request context, which is the shape every handler reads.
func Authenticated(secret []byte) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey: secret,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(token.Claims)
		},
		SuccessHandler: func(c echo.Context) {
			t := c.Get("user").(*jwt.Token)
			claims := t.Claims.(*token.Claims)
			c.Set("userID", claims.Subject)
			c.Set("userRole", claims.Role)
			c.Set("userEmail", claims.Email)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return c.JSON(http.StatusUnauthorized, models.ErrorResponse{Message: "missing or invalid session token"})
		},
	})
}

// RequireRole guards routes that only one of the two roles may call.
func RequireRole(role models.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Get("userRole") != string(role) {
				return c.JSON(http.StatusForbidden, models.ErrorResponse{Message: "insufficient role"})
			}
			return next(c)
		}
	}
}
