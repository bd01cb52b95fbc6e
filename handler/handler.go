package handler

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"messenger-api/apperror"
)

// pathID reads a path parameter and rejects anything that is not a UUID
// before it reaches a query.
func pathID(c *fiber.Ctx, name string) (string, error) {
	value := c.Params(name)
	if _, err := uuid.Parse(value); err != nil {
		return "", apperror.Validation(fmt.Sprintf("%s must be a valid uuid", name))
	}
	return value, nil
}
