package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the header used to propagate the request ID.
const HeaderName = "X-Ray-ID"

// New returns a middleware that assigns a RayID to every request.
// An ID supplied by the caller is kept so scheduler retries stay correlated.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals("ray_id", rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
