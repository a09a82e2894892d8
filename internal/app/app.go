// Package app assembles the fiber application.
package app

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/api/middleware"
	"github.com/emotu/micro-cloud/internal/api/routes"
	log "github.com/emotu/micro-cloud/internal/logger"
)

// New builds the application with its middleware and route tree mounted.
func New(deps *routes.Deps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.Settings.APIName,
		ErrorHandler: errorHandler,
	})

	app.Use(middleware.Logger())

	routes.Register(app, deps)

	return app
}

// errorHandler renders every error as a structured detail list, so guard
// failures, validation errors and unexpected panics all share one body
// shape.
func errorHandler(c *fiber.Ctx, err error) error {
	var appErr *errs.Error
	if errors.As(err, &appErr) {
		return c.Status(appErr.Status).JSON(appErr)
	}

	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(errs.Error{
			Items: []errs.Item{{Type: errs.TypeValidation, Loc: []string{"request"}, Msg: fiberErr.Message}},
		})
	}

	log.Errorf("unhandled error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(errs.Error{
		Items: []errs.Item{{Type: errs.TypeValidation, Loc: []string{"server"}, Msg: "internal server error"}},
	})
}
