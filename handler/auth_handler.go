package handler

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"messenger-api/apperror"
	"messenger-api/dto/req"
	"messenger-api/dto/res"
	"messenger-api/middleware"
	"messenger-api/usecase"
)

type AuthHandler struct {
	AuthUsecase usecase.AuthUsecase
	Log         *logrus.Logger
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, log *logrus.Logger) *AuthHandler {
	return &AuthHandler{AuthUsecase: authUsecase, Log: log}
}

func (h *AuthHandler) Signup(c *fiber.Ctx) error {
	request := new(req.SignupRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	tokens, err := h.AuthUsecase.Signup(c.UserContext(), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.TokenResponse]{
		Message:    "Signup successful",
		StatusCode: fiber.StatusCreated,
		Data:       tokens,
	})
}

func (h *AuthHandler) Signin(c *fiber.Ctx) error {
	request := new(req.SigninRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	tokens, err := h.AuthUsecase.Signin(c.UserContext(), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.TokenResponse]{
		Message:    "Signin successful",
		StatusCode: fiber.StatusOK,
		Data:       tokens,
	})
}

// Refresh rotates the token pair. The raw bearer token is re-read from the
// header because the stored digest is compared against the exact presented
// string, not the parsed claims.
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
	presented := bearerToken(c)
	if presented == "" {
		return apperror.Authentication("missing token")
	}

	tokens, err := h.AuthUsecase.Refresh(c.UserContext(), middleware.CurrentUserID(c), presented)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.TokenResponse]{
		Message:    "Tokens refreshed",
		StatusCode: fiber.StatusOK,
		Data:       tokens,
	})
}

func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.AuthUsecase.Logout(c.UserContext(), middleware.CurrentUserID(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[any]{
		Message:    "Logout successful",
		StatusCode: fiber.StatusOK,
	})
}

func bearerToken(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if len(header) > 7 && strings.EqualFold(header[:7], "bearer ") {
		return header[7:]
	}
	return ""
}
