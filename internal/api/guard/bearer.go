package guard

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/auth"
	"github.com/emotu/micro-cloud/internal/db/repos"
)

// BearerConfig controls the bearer-token guard.
type BearerConfig struct {
	// Public lets unauthenticated requests through as anonymous instead of
	// rejecting them.
	Public bool
	// Validate loads the user behind the token and rejects suspended or
	// deleted accounts.
	Validate bool
}

// Bearer authenticates requests carrying a signed bearer token. A missing
// token fails with TOKEN.REQUIRED unless the route is public, an expired one
// with TOKEN.EXPIRED and anything else unverifiable with TOKEN.INVALID. With
// Validate set, the user record is loaded and stored on the request, and
// suspended or missing accounts fail with TOKEN.DENIED.
func (f *Factory) Bearer(cfg BearerConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerCredentials(c)
		if token == "" {
			if cfg.Public {
				return c.Next()
			}
			return errs.Authentication(errs.CodeTokenRequired)
		}

		uid, err := f.Codec.Verify(token)
		if err != nil {
			if errors.Is(err, auth.ErrTokenExpired) {
				return errs.Authentication(errs.CodeTokenExpired)
			}
			return errs.Authentication(errs.CodeTokenInvalid)
		}

		if cfg.Validate {
			user, err := f.Users.GetByID(c.Context(), uid)
			if err != nil {
				if errors.Is(err, repos.ErrNotFound) {
					return errs.Authentication(errs.CodeTokenDenied)
				}
				return err
			}
			if user.IsSuspended {
				return errs.Authentication(errs.CodeTokenDenied)
			}
			c.Locals(LocalUser, user)
		}

		c.Locals(LocalUserID, uid)
		return c.Next()
	}
}
