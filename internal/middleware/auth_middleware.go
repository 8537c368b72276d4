package middleware

import (
	"context"
	"errors"
	"strings"
	"time"

	"kledje/domain"
	"kledje/pkg/logger"
	"kledje/pkg/utils"

	"github.com/labstack/echo/v4"
)

const (
	ContextKeyUser   = "user"
	ContextKeyUserID = "user_id"
	ContextKeyRole   = "role"
)

type TokenParser interface {
	ParseJWT(token string) (*utils.Claims, error)
}

type UserFinder interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
}

// AuthMiddleware requires a valid bearer token whose subject resolves to a
// stored user.
func AuthMiddleware(tokens TokenParser, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return domain.NewAuthenticationError(domain.MsgNotAuthorizedRoute, nil)
			}

			if err := authenticate(c, tokens, users, token); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// OptionalAuthMiddleware lets anonymous requests through. A header that is
// present is verified exactly like AuthMiddleware and never downgraded.
func OptionalAuthMiddleware(tokens TokenParser, users UserFinder) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			if header == "" {
				return next(c)
			}

			token, ok := bearerToken(header)
			if !ok {
				return domain.NewAuthenticationError(domain.MsgNotAuthorizedRoute, nil)
			}

			if err := authenticate(c, tokens, users, token); err != nil {
				return err
			}

			return next(c)
		}
	}
}

// Authorize must run after AuthMiddleware.
func Authorize(roles ...string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := CurrentUser(c)
			if user == nil {
				return domain.NewAuthenticationError(domain.MsgNotAuthorizedRoute, nil)
			}

			for _, role := range roles {
				if user.Role == role {
					return next(c)
				}
			}

			logger.Warn("Role not permitted", "user_id", user.ID, "role", user.Role, "path", c.Path())
			return domain.NewAuthorizationError(domain.MsgNotAuthorizedRoute)
		}
	}
}

func AdminOnly() echo.MiddlewareFunc {
	return Authorize(domain.RoleAdmin)
}

// CurrentUser returns the authenticated user or nil for anonymous requests.
func CurrentUser(c echo.Context) *domain.User {
	user, _ := c.Get(ContextKeyUser).(*domain.User)
	return user
}

func IsAdmin(c echo.Context) bool {
	user := CurrentUser(c)
	return user != nil && user.IsAdmin()
}

func authenticate(c echo.Context, tokens TokenParser, users UserFinder, token string) error {
	claims, err := tokens.ParseJWT(token)
	if err != nil {
		if errors.Is(err, utils.ErrTokenExpired) {
			logger.Debug("Expired bearer token", "path", c.Path())
			return domain.NewAuthenticationError(domain.MsgTokenExpired, err)
		}
		logger.Warn("Rejected bearer token", "path", c.Path(), "error", err)
		return domain.NewAuthenticationError(domain.MsgInvalidToken, err)
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := users.FindByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.NewAuthenticationError(domain.MsgUserNotFound, err)
		}
		logger.Error("Failed to resolve token subject", "user_id", claims.Subject, "error", err)
		return err
	}

	c.Set(ContextKeyUser, user)
	c.Set(ContextKeyUserID, user.ID)
	c.Set(ContextKeyRole, user.Role)

	return nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.Fields(header)
	if len(parts) != 2 || parts[0] != "Bearer" {
		return "", false
	}
	return parts[1], true
}
