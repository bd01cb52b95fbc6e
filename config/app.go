package config

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/sirupsen/logrus"

	"messenger-api/config/common"
	"messenger-api/config/logger"
	"messenger-api/handler"
	"messenger-api/middleware"
	"messenger-api/repository"
	"messenger-api/routes"
	"messenger-api/security"
	"messenger-api/usecase"
)

type AppConfig struct {
	*fiber.App
	*validator.Validate
	*logrus.Logger
	*DBConfig
	*security.JWT
	*middleware.Middleware
}

func NewLogrus() *logrus.Logger {
	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	log.SetLevel(logrus.InfoLevel)
	return log
}

func RunServer() {
	newConfig := common.NewViper()
	app := NewFiber(newConfig)
	log := NewLogrus()
	appLogger := logger.NewLogger()
	newDB := NewDB(newConfig, appLogger)
	newValidator := NewValidator()

	newJWT, err := security.NewJWT(newConfig)
	if err != nil {
		log.WithError(err).Fatal("Failed to load JWT keys")
	}

	newUserRepository := repository.NewUserRepository()
	newMiddleware := middleware.NewMiddleware(newJWT, newUserRepository, newDB.GetDB(), log)

	app.Use(cors.New(cors.Config{
		AllowOrigins: newConfig.GetCORSConfig(),
		AllowMethods: "GET,POST,PATCH,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	App(&AppConfig{
		App:        app,
		Validate:   newValidator,
		Logger:     log,
		DBConfig:   newDB,
		JWT:        newJWT,
		Middleware: newMiddleware,
	})

	_, port := newConfig.GetAppConfig()
	if err := app.Listen(":" + port); err != nil {
		log.WithError(err).Errorf("Failed to start server: %v", err)
	}
}

func App(aC *AppConfig) {
	newUserRepository := repository.NewUserRepository()
	newChatRepository := repository.NewChatRepository()
	newMessageRepository := repository.NewMessageRepository()

	newAuthUsecase := usecase.NewAuthUsecase(newUserRepository, aC.Validate, aC.GetDB(), aC.Logger, aC.JWT)
	newUserUsecase := usecase.NewUserUsecase(newUserRepository, aC.Validate, aC.GetDB(), aC.Logger)
	newChatUsecase := usecase.NewChatUsecase(newChatRepository, newUserRepository, aC.Validate, aC.GetDB(), aC.Logger)
	newMessageUsecase := usecase.NewMessageUsecase(newMessageRepository, newChatRepository, aC.Validate, aC.GetDB(), aC.Logger)

	newAuthHandler := handler.NewAuthHandler(newAuthUsecase, aC.Logger)
	newUserHandler := handler.NewUserHandler(newUserUsecase, aC.Logger)
	newChatHandler := handler.NewChatHandler(newChatUsecase, aC.Logger)
	newMessageHandler := handler.NewMessageHandler(newMessageUsecase, aC.Logger)

	route := routes.RouteConfig{
		App:            aC.App,
		AuthHandler:    newAuthHandler,
		UserHandler:    newUserHandler,
		ChatHandler:    newChatHandler,
		MessageHandler: newMessageHandler,
		Middleware:     aC.Middleware,
	}
	route.ConfigRoute()
}
