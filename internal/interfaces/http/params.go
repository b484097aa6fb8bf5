package http

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/kdevnel/device-portal/internal/domain"
)

// pathID parses the :id route parameter.
func pathID(c *fiber.Ctx) (int, bool) {
	id, err := strconv.Atoi(c.Params("id"))
	if err != nil {
		return 0, false
	}
	return id, true
}

// pageParams reads page and page_size, defaulting only when they are absent.
func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("page", 1), c.QueryInt("page_size", domain.DefaultPageSize)
}

// optionalIntQuery returns nil when key is absent or empty.
func optionalIntQuery(c *fiber.Ctx, key string) (*int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &n, true
}
