package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/minazuki/interview-tracker-api/internal/constants"
	"github.com/stretchr/testify/assert"
)

func pageParamsFor(t *testing.T, rawQuery string) PageParams {
	t.Helper()

	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest("GET", "/api/interviews?"+rawQuery, nil)

	return GetPageParams(c)
}

func TestGetPageParams_Defaults(t *testing.T) {
	params := pageParamsFor(t, "")
	assert.Equal(t, constants.DefaultTake, params.Take)
	assert.Equal(t, 0, params.Skip)
}

func TestGetPageParams_ExplicitValues(t *testing.T) {
	params := pageParamsFor(t, "take=25&skip=50")
	assert.Equal(t, 25, params.Take)
	assert.Equal(t, 50, params.Skip)
}

func TestGetPageParams_TakeClampedToMax(t *testing.T) {
	params := pageParamsFor(t, "take=10000")
	assert.Equal(t, constants.MaxTake, params.Take)
}

func TestGetPageParams_NonPositiveTakeUsesDefault(t *testing.T) {
	assert.Equal(t, constants.DefaultTake, pageParamsFor(t, "take=0").Take)
	assert.Equal(t, constants.DefaultTake, pageParamsFor(t, "take=-5").Take)
}

func TestGetPageParams_NegativeSkipFloorsToZero(t *testing.T) {
	params := pageParamsFor(t, "skip=-10")
	assert.Equal(t, 0, params.Skip)
}

func TestGetPageParams_UnparseableValuesFallBack(t *testing.T) {
	params := pageParamsFor(t, "take=abc&skip=xyz")
	assert.Equal(t, constants.DefaultTake, params.Take)
	assert.Equal(t, 0, params.Skip)
}
