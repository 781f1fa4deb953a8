package helper

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

type Paging struct {
	Skip  int
	Limit int
}

// ResolvePaging lê ?skip= e ?limit= e normaliza os valores.
func ResolvePaging(c *fiber.Ctx, defaultLimit, maxLimit int) Paging {
	skipStr := strings.TrimSpace(c.Query("skip", "0"))
	limitStr := strings.TrimSpace(c.Query("limit", strconv.Itoa(defaultLimit)))

	skip, _ := strconv.Atoi(skipStr)
	if skip < 0 {
		skip = 0
	}

	limit, _ := strconv.Atoi(limitStr)
	if limit <= 0 {
		limit = defaultLimit
	}
	if maxLimit > 0 && limit > maxLimit {
		limit = maxLimit
	}

	return Paging{Skip: skip, Limit: limit}
}
