package config

import (
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"messenger-api/apperror"
	"messenger-api/config/common"
	"messenger-api/dto/res"
)

func NewFiber(cfg *common.Config) *fiber.App {
	appName, _ := cfg.GetAppConfig()
	return fiber.New(fiber.Config{
		Prefork:       false,
		CaseSensitive: true,
		StrictRouting: true,
		AppName:       appName,
		ErrorHandler:  ErrorHandler,
	})
}

func NewValidator() *validator.Validate {
	return validator.New(validator.WithRequiredStructEnabled())
}

// ErrorHandler is the single place errors become HTTP responses. Handlers
// and middleware return errors; nothing writes an error body directly.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var appErr *apperror.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.StatusCode()).JSON(res.ErrorResponse{
			Status:     string(appErr.Kind),
			StatusCode: appErr.StatusCode(),
			Error:      appErr.Message,
		})
	}

	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		fields := make(map[string]string, len(validationErrs))
		for _, fieldErr := range validationErrs {
			fields[fieldErr.Field()] = fmt.Sprintf("failed on the '%s' rule", fieldErr.Tag())
		}
		return c.Status(fiber.StatusBadRequest).JSON(res.ErrorResponse{
			Status:     string(apperror.KindValidation),
			StatusCode: fiber.StatusBadRequest,
			Error:      fields,
		})
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(res.ErrorResponse{
			Status:     "ERROR",
			StatusCode: fiberErr.Code,
			Error:      fiberErr.Message,
		})
	}

	return c.Status(fiber.StatusInternalServerError).JSON(res.ErrorResponse{
		Status:     string(apperror.KindInternal),
		StatusCode: fiber.StatusInternalServerError,
		Error:      "internal server error",
	})
}
