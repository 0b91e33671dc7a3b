package transport

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"
	goerrors "github.com/goliatone/go-errors"
	"github.com/goliatone/go-ledger/core"
)

// HeaderOwnerID carries the verified caller identity. The ledger trusts the
// value; authentication happens upstream of this surface.
const HeaderOwnerID = "X-Owner-ID"

const ownerLocalsKey = "ledger.owner_id"

func requireOwnerIdentity() fiber.Handler {
	return func(c *fiber.Ctx) error {
		ownerID := strings.TrimSpace(c.Get(HeaderOwnerID))
		if ownerID == "" {
			return goerrors.New("transport: caller identity is required", goerrors.CategoryAuth).
				WithCode(http.StatusUnauthorized).
				WithTextCode(core.LedgerErrorForbidden)
		}
		c.Locals(ownerLocalsKey, ownerID)
		return c.Next()
	}
}

func ownerFromContext(c *fiber.Ctx) string {
	ownerID, _ := c.Locals(ownerLocalsKey).(string)
	return ownerID
}
