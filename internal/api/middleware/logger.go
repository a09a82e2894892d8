package middleware

import (
	"time"

	fiber "github.com/gofiber/fiber/v2"

	"github.com/emotu/micro-cloud/internal/api/guard"
	log "github.com/emotu/micro-cloud/internal/logger"
)

// Logger returns a middleware that logs HTTP requests together with the
// identity the guards resolved for them.
func Logger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		// Continue chain
		err := c.Next()

		// After request
		stop := time.Now()
		latency := stop.Sub(start)

		fields := map[string]interface{}{
			"timestamp": stop.Format("2006/01/02 - 15:04:05"),
			"status":    c.Response().StatusCode(),
			"latency":   latency,
			"ip":        c.IP(),
			"method":    c.Method(),
			"path":      c.Path(),
			"handler":   c.Route().Name,
		}
		if uid := guard.CurrentUserID(c); uid != "" {
			fields["user_id"] = uid
		}
		if token := guard.CurrentAppToken(c); token != nil {
			fields["app_id"] = token.AppID
			fields["live_mode"] = token.LiveMode
		}

		log.InfoWithFields("Request", fields)

		return err
	}
}
