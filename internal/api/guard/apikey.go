package guard

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/auth"
	"github.com/emotu/micro-cloud/internal/db/repos"
)

// APIKeyConfig controls the API-key guard.
type APIKeyConfig struct {
	// Public lets unauthenticated requests through as anonymous instead of
	// rejecting them.
	Public bool
}

// APIKey authenticates requests carrying a secret API key as a bearer
// credential. The key prefix selects the keyspace it is resolved against, so
// test keys can never match live credentials. Unknown keys and keys on
// deactivated credentials fail with TOKEN.DENIED.
func (f *Factory) APIKey(cfg APIKeyConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		key := bearerCredentials(c)
		if key == "" {
			if cfg.Public {
				return c.Next()
			}
			return errs.Authentication(errs.CodeTokenRequired)
		}

		cred, err := f.Credentials.FindByKey(c.Context(), key)
		if err != nil {
			if errors.Is(err, repos.ErrNotFound) {
				return errs.Authentication(errs.CodeTokenDenied)
			}
			return err
		}
		if !cred.Active() {
			return errs.Authentication(errs.CodeTokenDenied)
		}

		token := &AppToken{
			Key:      key,
			AppID:    cred.AppID,
			EntityID: cred.EntityID,
			UserID:   cred.UserID,
			LiveMode: auth.IsLiveKey(key),
		}
		c.Locals(LocalAppToken, token)
		c.Locals(LocalLiveMode, token.LiveMode)
		if token.UserID != "" {
			c.Locals(LocalUserID, token.UserID)
		}
		return c.Next()
	}
}
