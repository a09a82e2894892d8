package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/api/guard"
	"github.com/emotu/micro-cloud/internal/services"
	"github.com/emotu/micro-cloud/internal/types"
)

// Credentials handles the credential lifecycle actions mounted under /apps.
type Credentials struct {
	svc *services.Credentials
}

// NewCredentialHandler creates a new credential handler.
func NewCredentialHandler(svc *services.Credentials) *Credentials {
	return &Credentials{svc: svc}
}

// Reset regenerates the selected secret keys of a credential.
func (h *Credentials) Reset(c *fiber.Ctx) error {
	req := new(types.ResetKeysRequest)
	if err := c.BodyParser(req); err != nil {
		return errs.Validation("body", "request body could not be parsed")
	}
	cred, err := h.svc.ResetKeys(c.Context(), c.Params("id"), guard.CurrentUserID(c), req)
	if err != nil {
		return err
	}
	return c.JSON(cred)
}

// Toggle flips a credential between active and deactivated.
func (h *Credentials) Toggle(c *fiber.Ctx) error {
	cred, err := h.svc.ToggleActive(c.Context(), c.Params("id"), guard.CurrentUserID(c))
	if err != nil {
		return err
	}
	return c.JSON(cred)
}
