package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"messenger-api/apperror"
	"messenger-api/dto/req"
	"messenger-api/dto/res"
	"messenger-api/middleware"
	"messenger-api/usecase"
)

type UserHandler struct {
	UserUsecase usecase.UserUsecase
	Log         *logrus.Logger
}

func NewUserHandler(userUsecase usecase.UserUsecase, log *logrus.Logger) *UserHandler {
	return &UserHandler{UserUsecase: userUsecase, Log: log}
}

func (h *UserHandler) GetMe(c *fiber.Ctx) error {
	user, err := h.UserUsecase.GetUser(c.UserContext(), middleware.CurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Message:    "Success get profile",
		StatusCode: fiber.StatusOK,
		Data:       user,
	})
}

func (h *UserHandler) GetUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	user, err := h.UserUsecase.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Message:    "Success get user",
		StatusCode: fiber.StatusOK,
		Data:       user,
	})
}

func (h *UserHandler) ListUsers(c *fiber.Ctx) error {
	users, err := h.UserUsecase.ListUsers(c.UserContext())
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[[]res.UserResponse]{
		Message:    "Success get all users",
		StatusCode: fiber.StatusOK,
		Data:       users,
	})
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	request := new(req.UpdateProfileRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	if err := h.UserUsecase.UpdateProfile(c.UserContext(), id, request, middleware.CurrentUserID(c)); err != nil {
		return err
	}

	user, err := h.UserUsecase.GetUser(c.UserContext(), id)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.UserResponse]{
		Message:    "Profile updated",
		StatusCode: fiber.StatusOK,
		Data:       user,
	})
}

func (h *UserHandler) DeleteUser(c *fiber.Ctx) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.UserUsecase.DeleteUser(c.UserContext(), id); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[any]{
		Message:    "User deleted",
		StatusCode: fiber.StatusOK,
	})
}
