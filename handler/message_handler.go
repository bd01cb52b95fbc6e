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

type MessageHandler struct {
	MessageUsecase usecase.MessageUsecase
	Log            *logrus.Logger
}

func NewMessageHandler(messageUsecase usecase.MessageUsecase, log *logrus.Logger) *MessageHandler {
	return &MessageHandler{MessageUsecase: messageUsecase, Log: log}
}

func (h *MessageHandler) CreateMessage(c *fiber.Ctx) error {
	request := new(req.CreateMessageRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	message, err := h.MessageUsecase.CreateMessage(c.UserContext(), middleware.CurrentUserID(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.MessageResponse]{
		Message:    "Message sent",
		StatusCode: fiber.StatusCreated,
		Data:       message,
	})
}

func (h *MessageHandler) ListMessages(c *fiber.Ctx) error {
	filter := new(req.MessageFilterRequest)
	if err := c.QueryParser(filter); err != nil {
		return apperror.Validation("invalid query parameters")
	}

	page, err := h.MessageUsecase.ListMessages(c.UserContext(), middleware.CurrentUserID(c), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.PageResponse[res.MessageResponse]]{
		Message:    "Success get messages",
		StatusCode: fiber.StatusOK,
		Data:       page,
	})
}

func (h *MessageHandler) GetMessage(c *fiber.Ctx) error {
	messageID, err := pathID(c, "messageId")
	if err != nil {
		return err
	}

	message, err := h.MessageUsecase.GetMessage(c.UserContext(), messageID, middleware.CurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.MessageResponse]{
		Message:    "Success get message",
		StatusCode: fiber.StatusOK,
		Data:       message,
	})
}

func (h *MessageHandler) UpdateMessage(c *fiber.Ctx) error {
	messageID, err := pathID(c, "messageId")
	if err != nil {
		return err
	}

	request := new(req.UpdateMessageRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	message, err := h.MessageUsecase.UpdateMessage(c.UserContext(), messageID, middleware.CurrentUserID(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.MessageResponse]{
		Message:    "Message updated",
		StatusCode: fiber.StatusOK,
		Data:       message,
	})
}

func (h *MessageHandler) DeleteMessage(c *fiber.Ctx) error {
	messageID, err := pathID(c, "messageId")
	if err != nil {
		return err
	}

	if err := h.MessageUsecase.DeleteMessage(c.UserContext(), messageID, middleware.CurrentUserID(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[any]{
		Message:    "Message deleted",
		StatusCode: fiber.StatusOK,
	})
}

func (h *MessageHandler) AddReaction(c *fiber.Ctx) error {
	messageID, err := pathID(c, "messageId")
	if err != nil {
		return err
	}

	request := new(req.ReactionRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	reaction, err := h.MessageUsecase.AddReaction(c.UserContext(), messageID, middleware.CurrentUserID(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.ReactionResponse]{
		Message:    "Reaction added",
		StatusCode: fiber.StatusCreated,
		Data:       reaction,
	})
}

func (h *MessageHandler) RemoveReaction(c *fiber.Ctx) error {
	messageID, err := pathID(c, "messageId")
	if err != nil {
		return err
	}

	emoji := c.Query("emoji")
	if emoji == "" {
		return apperror.Validation("emoji is required")
	}

	if err := h.MessageUsecase.RemoveReaction(c.UserContext(), messageID, middleware.CurrentUserID(c), emoji); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[any]{
		Message:    "Reaction removed",
		StatusCode: fiber.StatusOK,
	})
}

func (h *MessageHandler) ListReactions(c *fiber.Ctx) error {
	messageID, err := pathID(c, "messageId")
	if err != nil {
		return err
	}

	reactions, err := h.MessageUsecase.ListReactions(c.UserContext(), messageID, middleware.CurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[[]res.ReactionResponse]{
		Message:    "Success get reactions",
		StatusCode: fiber.StatusOK,
		Data:       reactions,
	})
}
