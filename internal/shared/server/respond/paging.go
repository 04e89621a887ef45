package respond

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 50
)

// PageParams reads limit and offset query parameters. Missing or invalid
// values fall back to DefaultPageLimit and 0; limit is capped at MaxPageLimit.
func PageParams(c *gin.Context) (limit, offset int) {
	limit = DefaultPageLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = min(v, MaxPageLimit)
	}
	if v, err := strconv.Atoi(c.Query("offset")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}
