package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/kaplack/siget-sub000/internal/versioning"
)

// Versioning is the shared lifecycle service, wired up in main after the
// database connection and holiday calendar are ready.
var Versioning *versioning.Service

// respondError maps the core's typed errors to HTTP statuses. Anything
// unrecognized is a 500.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, versioning.ErrValidation):
		status = fiber.StatusBadRequest
	case errors.Is(err, versioning.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, versioning.ErrInvalidState),
		errors.Is(err, versioning.ErrCycle),
		errors.Is(err, versioning.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, versioning.ErrNoDrafts),
		errors.Is(err, versioning.ErrNoBaseline),
		errors.Is(err, versioning.ErrPrecondition):
		status = fiber.StatusUnprocessableEntity
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
