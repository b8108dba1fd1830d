package http

import (
	"fmt"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// SetNextLink adds an RFC 8288 Link header pointing at the next page.
// It keeps the current filters and swaps in the continuation token.
// Nothing is set on the last page.
func SetNextLink(c *fiber.Ctx, token string) {
	if token == "" {
		return
	}
	q := queryValues(c)
	q.Set(domain.ParamPageToken, token)
	c.Set(fiber.HeaderLink, fmt.Sprintf(`<%s?%s>; rel="next"`, c.Path(), q.Encode()))
}
