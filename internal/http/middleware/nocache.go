package middleware

import "github.com/gofiber/fiber/v2"

// NoCache marks responses as non-cacheable. QR artifacts are overwritten in
// place when settings change, and exports are generated per request.
func NoCache() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set(fiber.HeaderCacheControl, "no-cache, no-store, must-revalidate")
		return c.Next()
	}
}
