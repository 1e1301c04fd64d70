package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	assert.Equal(t, "2.35", String(Round(decimal.RequireFromString("2.345"))))
	assert.Equal(t, "2.34", String(Round(decimal.RequireFromString("2.344"))))
}

func TestEqual(t *testing.T) {
	assert.True(t, Equal(decimal.RequireFromString("9.99"), decimal.NewFromFloat(9.99)))
	assert.True(t, Equal(decimal.RequireFromString("9.990"), decimal.RequireFromString("9.99")))
	assert.False(t, Equal(decimal.RequireFromString("9.99"), decimal.NewFromInt(8)))
}

func TestHasAtMostPlaces(t *testing.T) {
	assert.True(t, HasAtMostPlaces(decimal.RequireFromString("10")))
	assert.True(t, HasAtMostPlaces(decimal.RequireFromString("10.25")))
	assert.False(t, HasAtMostPlaces(decimal.RequireFromString("10.255")))
}
