package routes

import (
	"github.com/gofiber/fiber/v2"

	"messenger-api/enum"
	"messenger-api/handler"
	"messenger-api/middleware"
)

type RouteConfig struct {
	App            *fiber.App
	AuthHandler    *handler.AuthHandler
	UserHandler    *handler.UserHandler
	ChatHandler    *handler.ChatHandler
	MessageHandler *handler.MessageHandler
	Middleware     *middleware.Middleware
}

func (c *RouteConfig) ConfigRoute() {
	api := c.App.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/signup", c.AuthHandler.Signup)
	auth.Post("/signin", c.AuthHandler.Signin)
	auth.Post("/refresh",
		c.Middleware.RefreshProtected(),
		c.Middleware.RequireTokenType(enum.TokenTypeRefresh),
		c.AuthHandler.Refresh)

	protected := api.Group("",
		c.Middleware.AccessProtected(),
		c.Middleware.RequireTokenType(enum.TokenTypeAccess))

	protected.Post("/auth/logout", c.AuthHandler.Logout)

	users := protected.Group("/users")
	users.Get("/me", c.UserHandler.GetMe)
	users.Get("", c.Middleware.AdminOnly(), c.UserHandler.ListUsers)
	users.Get("/:id", c.UserHandler.GetUser)
	users.Patch("/:id", c.UserHandler.UpdateProfile)
	users.Delete("/:id", c.Middleware.AdminOnly(), c.UserHandler.DeleteUser)

	chats := protected.Group("/chats")
	chats.Post("/private", c.ChatHandler.StartPrivateChat)
	chats.Post("/group", c.ChatHandler.CreateGroupChat)
	chats.Get("", c.ChatHandler.ListChats)
	chats.Get("/:chatId", c.ChatHandler.GetChat)
	chats.Delete("/:chatId", c.ChatHandler.DeleteChat)
	chats.Post("/:chatId/members", c.ChatHandler.AddMember)
	chats.Delete("/:chatId/members/:userId", c.ChatHandler.RemoveMember)

	messages := protected.Group("/messages")
	messages.Post("", c.MessageHandler.CreateMessage)
	messages.Get("", c.MessageHandler.ListMessages)
	messages.Get("/:messageId", c.MessageHandler.GetMessage)
	messages.Patch("/:messageId", c.MessageHandler.UpdateMessage)
	messages.Delete("/:messageId", c.MessageHandler.DeleteMessage)
	messages.Post("/:messageId/reactions", c.MessageHandler.AddReaction)
	messages.Get("/:messageId/reactions", c.MessageHandler.ListReactions)
	messages.Delete("/:messageId/reactions", c.MessageHandler.RemoveReaction)
}
