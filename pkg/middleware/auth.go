package middleware

import (
	"context"
	"strings"

	"github.com/Anaselll/TeachMeApp/pkg/common"
	"github.com/Anaselll/TeachMeApp/pkg/infra/auth/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

const authorizationHeader = "Authorization"
const bearerPrefix = "Bearer "

type authMiddleware struct {
	logger     *logrus.Logger
	jwtManager jwt.Manager
}

// NewAuthMiddleware resolves the caller from a bearer token. Browsers cannot
// set headers on a websocket upgrade, so the token query parameter is accepted
// as well.
func NewAuthMiddleware(logger *logrus.Logger, jwtManager jwt.Manager) Middleware {
	return &authMiddleware{
		logger:     logger,
		jwtManager: jwtManager,
	}
}

func (m *authMiddleware) Middleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		tokenString, ok := m.extractToken(ctx)
		if !ok {
			m.logger.Debug("no authorization provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Authorization required"})
		}
		if tokenString == "" {
			m.logger.Debug("empty token provided")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Empty token provided"})
		}

		claims, err := m.jwtManager.ValidateToken(tokenString)
		if err != nil {
			m.logger.WithError(err).Debug("invalid token")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}
		caller, err := claims.User()
		if err != nil {
			m.logger.WithError(err).Debug("token carries no user")
			return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
		}

		ctx.Locals(string(common.CallerIDContextKey), caller)
		ctx.Locals(string(common.CallerEmailContextKey), claims.UserEmail)

		c := context.WithValue(ctx.UserContext(), common.CallerIDContextKey, caller)
		c = context.WithValue(c, common.CallerEmailContextKey, claims.UserEmail)
		ctx.SetUserContext(c)

		return ctx.Next()
	}
}

// extractToken reports false when neither the header nor the query parameter
// is present. A malformed header yields an empty token.
func (m *authMiddleware) extractToken(ctx *fiber.Ctx) (string, bool) {
	if authHeader := ctx.Get(authorizationHeader); authHeader != "" {
		if !strings.HasPrefix(authHeader, bearerPrefix) {
			return "", true
		}
		return strings.TrimSpace(strings.TrimPrefix(authHeader, bearerPrefix)), true
	}
	if token := ctx.Query(common.TokenQueryParam); token != "" {
		return token, true
	}
	return "", false
}
