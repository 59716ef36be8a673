// Package handlers contains the HTTP route handlers for the soccer league
// API. Every handler follows the factory pattern: it takes its dependencies
// (the store, config, hub) and returns a fiber.Handler, so nothing reaches
// for globals.
//
// Responses share one envelope: {"Error": false, "<Name>": payload} on
// success and {"Error": true, "Message": "..."} on failure, with PascalCase
// payload keys throughout.
package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/mwessels/soccer-league/internal/store"
)

// respond writes the success envelope with the payload under name.
func respond(c *fiber.Ctx, status int, name string, payload any) error {
	return c.Status(status).JSON(fiber.Map{
		"Error": false,
		name:    payload,
	})
}

// fail writes the error envelope.
func fail(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(fiber.Map{
		"Error":   true,
		"Message": message,
	})
}

// storeFail maps store errors onto status codes: missing rows become 404,
// duplicate emails 409, anything else a 500.
func storeFail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return fail(c, fiber.StatusNotFound, "not found")
	case errors.Is(err, store.ErrEmailTaken):
		return fail(c, fiber.StatusConflict, "email address already registered")
	default:
		return fail(c, fiber.StatusInternalServerError, "something went wrong")
	}
}

// paramID reads a numeric path parameter; a zero return means the param was
// missing or malformed and the handler should answer 400.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := c.ParamsInt(name)
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}
