// Package handlers implements the custom route actions that sit outside the
// generated CRUD operations.
package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/services"
	"github.com/emotu/micro-cloud/internal/types"
)

// Auth handles the authentication actions mounted under /auth.
type Auth struct {
	svc *services.Auth
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc *services.Auth) *Auth {
	return &Auth{svc: svc}
}

// Signup registers a new user account.
func (h *Auth) Signup(c *fiber.Ctx) error {
	req := new(types.SignupRequest)
	if err := c.BodyParser(req); err != nil {
		return errs.Validation("body", "request body could not be parsed")
	}
	resp, err := h.svc.Signup(c.Context(), req)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login authenticates with a username and password.
func (h *Auth) Login(c *fiber.Ctx) error {
	req := new(types.LoginRequest)
	if err := c.BodyParser(req); err != nil {
		return errs.Validation("body", "request body could not be parsed")
	}
	resp, err := h.svc.Login(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// RequestPassword starts a password reset flow.
func (h *Auth) RequestPassword(c *fiber.Ctx) error {
	req := new(types.PasswordResetRequest)
	if err := c.BodyParser(req); err != nil {
		return errs.Validation("body", "request body could not be parsed")
	}
	resp, err := h.svc.RequestPasswordReset(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// ResetPassword completes a password reset with a one-time code.
func (h *Auth) ResetPassword(c *fiber.Ctx) error {
	req := new(types.PasswordReset)
	if err := c.BodyParser(req); err != nil {
		return errs.Validation("body", "request body could not be parsed")
	}
	resp, err := h.svc.ResetPassword(c.Context(), req)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}
