package utils

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/minazuki/interview-tracker-api/internal/constants"
)

// PageParams holds take/skip pagination parameters.
type PageParams struct {
	Take int
	Skip int
}

// GetPageParams extracts take and skip from the request. Out-of-range or
// unparseable values are clamped to safe defaults, never rejected.
func GetPageParams(c *gin.Context) PageParams {
	take, err := strconv.Atoi(c.DefaultQuery("take", strconv.Itoa(constants.DefaultTake)))
	if err != nil || take < 1 {
		take = constants.DefaultTake
	}
	if take > constants.MaxTake {
		take = constants.MaxTake
	}

	skip, err := strconv.Atoi(c.DefaultQuery("skip", "0"))
	if err != nil || skip < 0 {
		skip = 0
	}

	return PageParams{
		Take: take,
		Skip: skip,
	}
}
