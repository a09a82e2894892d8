// Package guard produces the request guards that gate generated routes:
// bearer-token identity, API-key identity, ambient value extraction and
// role-based permission checks. Guards are independent fiber middleware and
// compose in any order; failures carry the structured error bodies from the
// errs package.
package guard

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/auth"
	"github.com/emotu/micro-cloud/internal/db/models"
	"github.com/emotu/micro-cloud/internal/db/repos"
)

// Locals keys under which resolved identity values are stored per request.
const (
	LocalUserID   = "user_id"
	LocalUser     = "user"
	LocalAppToken = "app_token"
	LocalLiveMode = "live_mode"
)

// AppToken is the resolved identity of a request authenticated with an API
// secret key.
type AppToken struct {
	Key      string `json:"-"`
	AppID    string `json:"app_id"`
	EntityID string `json:"entity_id,omitempty"`
	UserID   string `json:"user_id,omitempty"`
	LiveMode bool   `json:"live_mode"`
}

// Factory builds request guards bound to the identity stores and token
// codec.
type Factory struct {
	Users       *repos.UserRepository
	Credentials *repos.CredentialRepository
	Codec       *auth.TokenCodec
}

// NewFactory creates a guard factory.
func NewFactory(users *repos.UserRepository, credentials *repos.CredentialRepository, codec *auth.TokenCodec) *Factory {
	return &Factory{Users: users, Credentials: credentials, Codec: codec}
}

// bearerCredentials extracts the credential from an Authorization header of
// the form `Bearer <token>`.
func bearerCredentials(c *fiber.Ctx) string {
	header := c.Get(fiber.HeaderAuthorization)
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// CurrentUserID returns the authenticated user id on the request, if any.
func CurrentUserID(c *fiber.Ctx) string {
	if uid, ok := c.Locals(LocalUserID).(string); ok {
		return uid
	}
	return ""
}

// CurrentUser returns the loaded user identity on the request, if any.
func CurrentUser(c *fiber.Ctx) *models.User {
	if user, ok := c.Locals(LocalUser).(*models.User); ok {
		return user
	}
	return nil
}

// CurrentAppToken returns the resolved API-key identity on the request, if
// any.
func CurrentAppToken(c *fiber.Ctx) *AppToken {
	if token, ok := c.Locals(LocalAppToken).(*AppToken); ok {
		return token
	}
	return nil
}
