package guard

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/errs"
)

// ValueConfig controls a value guard.
type ValueConfig struct {
	// Required rejects requests that carry the value nowhere.
	Required bool
	// Lookup, when set, verifies the extracted value against a backing
	// store. A false result fails the request.
	Lookup func(ctx context.Context, value string) (bool, error)
	// Default is stored when the value is absent and not required.
	Default string
}

// Value extracts a named request value, checking the `x-<key>` header first,
// then a cookie, then a query parameter. The value lands in the request
// locals under its key for downstream scoping. A required value that is
// absent fails with HEADER.ATTRIBUTE.MISSING, and one that fails its lookup
// with HEADER.ATTRIBUTE.INVALID.
func (f *Factory) Value(key string, cfg ValueConfig) fiber.Handler {
	header := "x-" + strings.ReplaceAll(key, "_", "-")
	return func(c *fiber.Ctx) error {
		value := c.Get(header)
		if value == "" {
			value = c.Cookies(key)
		}
		if value == "" {
			value = c.Query(key)
		}

		if value == "" {
			if cfg.Required {
				return errs.Header(errs.CodeHeaderAttributeMissing, key)
			}
			if cfg.Default != "" {
				c.Locals(key, cfg.Default)
			}
			return c.Next()
		}

		if cfg.Lookup != nil {
			ok, err := cfg.Lookup(c.Context(), value)
			if err != nil {
				return err
			}
			if !ok {
				return errs.Header(errs.CodeHeaderAttributeInvalid, key)
			}
		}

		c.Locals(key, value)
		return c.Next()
	}
}
