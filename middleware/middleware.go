package middleware

import (
	"errors"

	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"messenger-api/apperror"
	"messenger-api/entity"
	"messenger-api/enum"
	"messenger-api/repository"
	"messenger-api/security"
)

type Middleware struct {
	JWT            *security.JWT
	UserRepository *repository.UserRepository
	DB             *gorm.DB
	Log            *logrus.Logger
}

func NewMiddleware(jwtSecurity *security.JWT, userRepository *repository.UserRepository, db *gorm.DB, log *logrus.Logger) *Middleware {
	return &Middleware{JWT: jwtSecurity, UserRepository: userRepository, DB: db, Log: log}
}

// AccessProtected verifies the bearer token against the access key pair.
func (m *Middleware) AccessProtected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: "ES512", Key: m.JWT.AccessPublicKey()},
		ErrorHandler: jwtError,
	})
}

// RefreshProtected verifies the bearer token against the refresh key pair.
// Tokens signed with the access key fail here even before the type claim
// is checked, because the key pairs are distinct.
func (m *Middleware) RefreshProtected() fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   jwtware.SigningKey{JWTAlg: "ES512", Key: m.JWT.RefreshPublicKey()},
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if errors.Is(err, jwt.ErrTokenExpired) {
		return apperror.Authentication("token has expired")
	}
	return apperror.Authentication("invalid or malformed token")
}

// RequireTokenType rejects tokens whose type claim does not match the
// route, then resolves the subject to a live user and stores its id in
// locals. A signature-valid token for a deleted user gets a 401 here.
func (m *Middleware) RequireTokenType(expected enum.TokenType) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token, ok := c.Locals("user").(*jwt.Token)
		if !ok {
			return apperror.Authentication("missing token")
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return apperror.Authentication("invalid or malformed token")
		}

		tokenType, _ := claims["type"].(string)
		if enum.TokenType(tokenType) != expected {
			return apperror.Authentication("unexpected token type")
		}

		sub, _ := claims["sub"].(string)
		if sub == "" {
			return apperror.Authentication("invalid or malformed token")
		}

		var user entity.User
		if err := m.UserRepository.FindById(c.UserContext(), m.DB, &user, sub); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Authentication("user no longer exists")
			}
			m.Log.WithError(err).Error("Failed to resolve token subject")
			return apperror.Internal("failed to resolve user", err)
		}

		c.Locals("user_id", user.ID)
		return c.Next()
	}
}

// AdminOnly gates a route on the stored role, not the token claims, so a
// demoted admin loses access as soon as the row changes.
func (m *Middleware) AdminOnly() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID, ok := c.Locals("user_id").(string)
		if !ok || userID == "" {
			return apperror.Authentication("missing token")
		}

		var user entity.User
		if err := m.UserRepository.FindById(c.UserContext(), m.DB, &user, userID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperror.Authentication("user no longer exists")
			}
			return apperror.Internal("failed to resolve user", err)
		}

		if user.Role != enum.RoleAdmin {
			return apperror.Forbidden("admin access required")
		}
		return c.Next()
	}
}

// CurrentUserID reads the authenticated user id set by RequireTokenType.
func CurrentUserID(c *fiber.Ctx) string {
	userID, _ := c.Locals("user_id").(string)
	return userID
}
