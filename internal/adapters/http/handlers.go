package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"

	"github.com/samirrijal/restofinder/internal/core/domain"
)

// ListRestaurantsHandler searches restaurants from raw query parameters.
func ListRestaurantsHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		result, err := deps.Restaurants.Search(c.UserContext(), queryValues(c))
		if err != nil {
			return respondError(c, err, "Failed to fetch restaurants")
		}

		SetNextLink(c, result.ContinuationToken)
		return c.JSON(result)
	}
}

// GetRestaurantHandler returns the detail record of one restaurant. The id
// path segment arrives escaped and is decoded here.
func GetRestaurantHandler(deps *Dependencies) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := url.PathUnescape(c.Params("id"))
		if err != nil {
			return respondError(c, &domain.ValidationError{
				Code:    domain.CodeInvalidID,
				Field:   "id",
				Message: "Invalid restaurant ID",
				Details: "ID must be a valid string",
			}, "")
		}

		detail, err := deps.Restaurants.GetByID(c.UserContext(), id)
		if err != nil {
			return respondError(c, err, "Failed to fetch restaurant details")
		}
		return c.JSON(fiber.Map{"result": detail})
	}
}

// queryValues keeps repeated parameters, which c.Queries() would collapse.
func queryValues(c *fiber.Ctx) url.Values {
	q := url.Values{}
	c.Context().QueryArgs().VisitAll(func(k, v []byte) {
		q.Add(string(k), string(v))
	})
	return q
}
