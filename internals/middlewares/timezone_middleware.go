package middlewares

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/helpers/dbtime"
)

// TimezoneMiddleware: header X-Timezone (IANA) menimpa zona default untuk
// request ini. Zona tidak dikenal diabaikan.
func TimezoneMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if tz := strings.TrimSpace(c.Get("X-Timezone")); tz != "" {
			if loc, err := time.LoadLocation(tz); err == nil {
				c.Locals(dbtime.LocTimezone, tz)
				c.Locals(dbtime.LocLocation, loc)
			}
		}
		return c.Next()
	}
}
