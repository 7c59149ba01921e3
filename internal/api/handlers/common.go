package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/kiber-king/foodgram-project-react/domain"
)

// viewerID returns the acting user id, or "" for anonymous requests.
func viewerID(c *fiber.Ctx) string {
	if id, ok := c.Locals("user_id").(string); ok {
		return id
	}
	return ""
}

func viewerRole(c *fiber.Ctx) string {
	if role, ok := c.Locals("role").(string); ok {
		return role
	}
	return ""
}

// parsePageLimit reads the page-number pagination params for general
// listings.
func parsePageLimit(c *fiber.Ctx) (int, int) {
	page, err := strconv.Atoi(c.Query("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.DefaultPageSize)))
	if err != nil || limit < 1 {
		limit = domain.DefaultPageSize
	}
	if limit > domain.MaxPageSize {
		limit = domain.MaxPageSize
	}

	return page, limit
}

// parseLimitOffset reads the limit/offset params used only by the cart
// listing.
func parseLimitOffset(c *fiber.Ctx) (int, int) {
	limit, err := strconv.Atoi(c.Query("limit", strconv.Itoa(domain.CartDefaultLimit)))
	if err != nil || limit < 1 {
		limit = domain.CartDefaultLimit
	}
	if limit > domain.CartMaxLimit {
		limit = domain.CartMaxLimit
	}

	offset, err := strconv.Atoi(c.Query("offset", "0"))
	if err != nil || offset < 0 {
		offset = 0
	}

	return limit, offset
}

func parseBoolQuery(c *fiber.Ctx, key string) *bool {
	raw := c.Query(key)
	if raw == "" {
		return nil
	}
	value := raw == "1" || raw == "true" || raw == "True"
	return &value
}

func paginationMap(page, limit int, count int64) fiber.Map {
	return fiber.Map{
		"page":        page,
		"limit":       limit,
		"total":       count,
		"total_pages": (count + int64(limit) - 1) / int64(limit),
	}
}
