package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/imadegun/prod-tracking-app/pkg/jwtutil"
	"github.com/imadegun/prod-tracking-app/pkg/logger"
	"github.com/imadegun/prod-tracking-app/prometheus"
)

// AuthMiddleware validates the JWT token and extracts the caller's identity,
// role and company into the request context
func AuthMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		log := logger.FromContext(c)

		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			log.Warn("Missing Authorization header")
			prometheus.RecordAuthError("missing_header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			log.Warn("Invalid Authorization header format")
			prometheus.RecordAuthError("invalid_header")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid authorization format, expected Bearer token"})
		}

		tokenString := parts[1]

		claims, err := jwtutil.ValidateToken(tokenString)
		if err != nil {
			log.Error("Invalid JWT token", zap.Error(err))
			prometheus.RecordAuthError("invalid_token")
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "invalid or expired token"})
		}

		// Every business entity is scoped by the caller's company
		c.Set("user_id", claims.UserID)
		c.Set("username", claims.Username)
		c.Set("company_id", claims.CompanyID)
		c.Set("user_role", claims.Role)

		log.Debug("Request authenticated",
			zap.Uint("user_id", claims.UserID),
			zap.Uint("company_id", claims.CompanyID),
			zap.String("role", claims.Role))

		return next(c)
	}
}

// RequireRole returns a middleware that rejects callers whose role is not in
// the allowed set. Missing session and insufficient role both answer 401.
func RequireRole(roles ...string) echo.MiddlewareFunc {
	allowed := make(map[string]struct{}, len(roles))
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			role, ok := c.Get("user_role").(string)
			if !ok {
				prometheus.RecordAuthError("missing_role")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required"})
			}
			if _, ok := allowed[role]; !ok {
				logger.FromContext(c).Warn("Insufficient role for endpoint",
					zap.String("role", role),
					zap.String("path", c.Path()))
				prometheus.RecordAuthError("insufficient_role")
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
			}
			return next(c)
		}
	}
}
