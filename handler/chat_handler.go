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

type ChatHandler struct {
	ChatUsecase usecase.ChatUsecase
	Log         *logrus.Logger
}

func NewChatHandler(chatUsecase usecase.ChatUsecase, log *logrus.Logger) *ChatHandler {
	return &ChatHandler{ChatUsecase: chatUsecase, Log: log}
}

func (h *ChatHandler) StartPrivateChat(c *fiber.Ctx) error {
	request := new(req.StartPrivateChatRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	chat, err := h.ChatUsecase.StartPrivateChat(c.UserContext(), middleware.CurrentUserID(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.ChatResponse]{
		Message:    "Private chat ready",
		StatusCode: fiber.StatusCreated,
		Data:       chat,
	})
}

func (h *ChatHandler) CreateGroupChat(c *fiber.Ctx) error {
	request := new(req.CreateGroupChatRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	chat, err := h.ChatUsecase.CreateGroupChat(c.UserContext(), middleware.CurrentUserID(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(res.CommonResponse[res.ChatResponse]{
		Message:    "Group chat created",
		StatusCode: fiber.StatusCreated,
		Data:       chat,
	})
}

func (h *ChatHandler) ListChats(c *fiber.Ctx) error {
	filter := new(req.ChatFilterRequest)
	if err := c.QueryParser(filter); err != nil {
		return apperror.Validation("invalid query parameters")
	}

	page, err := h.ChatUsecase.ListChats(c.UserContext(), middleware.CurrentUserID(c), filter)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.PageResponse[res.ChatResponse]]{
		Message:    "Success get chats",
		StatusCode: fiber.StatusOK,
		Data:       page,
	})
}

func (h *ChatHandler) GetChat(c *fiber.Ctx) error {
	chatID, err := pathID(c, "chatId")
	if err != nil {
		return err
	}

	chat, err := h.ChatUsecase.GetChat(c.UserContext(), chatID, middleware.CurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.ChatResponse]{
		Message:    "Success get chat",
		StatusCode: fiber.StatusOK,
		Data:       chat,
	})
}

func (h *ChatHandler) AddMember(c *fiber.Ctx) error {
	chatID, err := pathID(c, "chatId")
	if err != nil {
		return err
	}

	request := new(req.AddMemberRequest)
	if err := c.BodyParser(request); err != nil {
		return apperror.Validation("invalid request body")
	}

	chat, err := h.ChatUsecase.AddMember(c.UserContext(), chatID, middleware.CurrentUserID(c), request)
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.ChatResponse]{
		Message:    "Member added",
		StatusCode: fiber.StatusOK,
		Data:       chat,
	})
}

func (h *ChatHandler) RemoveMember(c *fiber.Ctx) error {
	chatID, err := pathID(c, "chatId")
	if err != nil {
		return err
	}
	userID, err := pathID(c, "userId")
	if err != nil {
		return err
	}

	chat, err := h.ChatUsecase.RemoveMember(c.UserContext(), chatID, userID, middleware.CurrentUserID(c))
	if err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[res.ChatResponse]{
		Message:    "Member removed",
		StatusCode: fiber.StatusOK,
		Data:       chat,
	})
}

func (h *ChatHandler) DeleteChat(c *fiber.Ctx) error {
	chatID, err := pathID(c, "chatId")
	if err != nil {
		return err
	}

	if err := h.ChatUsecase.DeleteChat(c.UserContext(), chatID, middleware.CurrentUserID(c)); err != nil {
		return err
	}

	return c.Status(fiber.StatusOK).JSON(res.CommonResponse[any]{
		Message:    "Chat deleted",
		StatusCode: fiber.StatusOK,
	})
}
