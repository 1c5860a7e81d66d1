package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// Header carries the request's ray id back to the caller.
const Header = "X-Ray-ID"

// New returns a middleware that assigns every request a unique ray id,
// stored in the context locals and echoed in the response header. An
// incoming id from the header is kept so traces can span callers.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(Header)
		if rid == "" {
			rid = uuid.NewString()
		}
		c.Locals("ray_id", rid)
		c.Set(Header, rid)
		return c.Next()
	}
}
