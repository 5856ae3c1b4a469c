package middleware

import (
	"log/slog"
	"slices"
	"strings"

	deliverycontext "gahana/internal/delivery/context"
	"gahana/internal/domain/entity"
	domainerrors "gahana/internal/domain/errors"
	"gahana/internal/domain/service"

	"github.com/labstack/echo/v4"
)

const bearerPrefix = "Bearer "

// AuthMiddleware authenticates access tokens and enforces roles.
type AuthMiddleware struct {
	tokenSvc service.TokenService
}

func NewAuthMiddleware(tokenSvc service.TokenService) *AuthMiddleware {
	return &AuthMiddleware{tokenSvc: tokenSvc}
}

// Authenticate requires a valid bearer access token and records its subject
// and role on the context.
func (m *AuthMiddleware) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		header := c.Request().Header.Get(echo.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, bearerPrefix)
		if !ok || strings.TrimSpace(token) == "" {
			return domainerrors.ErrUnauthorized.WithDetails("bearer token is required")
		}

		claims, err := m.tokenSvc.ValidateToken(strings.TrimSpace(token))
		if err != nil {
			return domainerrors.ErrUnauthorized.WithDetails("invalid or expired token")
		}

		var role entity.Role
		if len(claims.Roles) > 0 {
			role = entity.Role(claims.Roles[0])
		}
		deliverycontext.SetAuthUser(c, claims.UserID, role)

		ctx := c.Request().Context()
		if logger := deliverycontext.GetLogger(ctx); logger != nil {
			ctx = deliverycontext.WithLogger(ctx, logger.With(slog.String("user_id", claims.UserID.String())))
			c.SetRequest(c.Request().WithContext(ctx))
		}

		return next(c)
	}
}

// RequireRole must run after Authenticate.
func (m *AuthMiddleware) RequireRole(roles ...entity.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if _, ok := deliverycontext.GetUserID(c); !ok {
				return domainerrors.ErrUnauthorized
			}

			role := deliverycontext.GetUserRole(c)
			if !slices.Contains(roles, role) {
				return domainerrors.ErrForbidden.WithDetails("role " + role.String() + " may not use this endpoint")
			}

			return next(c)
		}
	}
}
