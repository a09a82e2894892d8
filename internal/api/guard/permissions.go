package guard

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/errs"
	"github.com/emotu/micro-cloud/internal/db/models"
	"github.com/emotu/micro-cloud/internal/db/repos"
)

// Permissions authorizes the authenticated user against a role set. An empty
// role set passes everyone through. The user loaded by a bearer guard is
// reused when present, otherwise the record is fetched by the authenticated
// user id. Requests without a resolvable user, or whose user holds none of
// the roles, fail with a 403.
func (f *Factory) Permissions(roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if len(roles) == 0 {
			return c.Next()
		}

		user, err := f.resolveUser(c)
		if err != nil {
			return err
		}
		if user == nil || !user.HasAnyRole(roles...) {
			return errs.Authorization()
		}
		return c.Next()
	}
}

func (f *Factory) resolveUser(c *fiber.Ctx) (*models.User, error) {
	if user := CurrentUser(c); user != nil {
		return user, nil
	}
	uid := CurrentUserID(c)
	if uid == "" {
		return nil, nil
	}
	user, err := f.Users.GetByID(c.Context(), uid)
	if err != nil {
		if errors.Is(err, repos.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	c.Locals(LocalUser, user)
	return user, nil
}
