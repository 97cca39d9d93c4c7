// Package middleware contains echo middleware for the HTTP delivery.
package middleware

import (
	"slices"
	"strings"

	"eduvn/internal/delivery/http/response"
	"eduvn/internal/domain/entity"
	"eduvn/internal/domain/service"
	"eduvn/internal/usecase"

	"github.com/labstack/echo/v4"
)

const (
	// ContextKeyActor is where Authenticate stores the caller's identity.
	ContextKeyActor = "actor"
)

// AuthMiddleware provides middleware for access-token authentication and
// role-based authorization.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate validates the Bearer access token and stores the actor on the
// request context. Every failure mode answers the same 401.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Authorization header is missing")
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Invalid token format, must be Bearer token")
		}

		claims, err := m.tokenSvc.ValidateAccessToken(tokenString)
		if err != nil {
			return response.Unauthorized(c, "ACCESS_TOKEN_INVALID", "Invalid or expired token")
		}

		c.Set(ContextKeyActor, usecase.Actor{ID: claims.UserID, Role: claims.Role})

		return next(c)
	}
}

// RequireRole is a middleware factory allowing only the listed roles.
// It must be used AFTER the Authenticate middleware.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := c.Get(ContextKeyActor).(usecase.Actor)
			if !ok {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: identity missing")
			}

			if !slices.Contains(roles, actor.Role) {
				return response.Forbidden(c, "FORBIDDEN", "Permission denied: insufficient role")
			}

			return next(c)
		}
	}
}

// ActorFromContext returns the authenticated actor set by Authenticate.
func ActorFromContext(c echo.Context) (usecase.Actor, bool) {
	actor, ok := c.Get(ContextKeyActor).(usecase.Actor)

	return actor, ok
}
