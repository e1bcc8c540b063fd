package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOf(t *testing.T) {
	for code := 1; code <= 14; code++ {
		c, ok := CategoryOf(code)
		assert.True(t, ok)
		assert.Equal(t, code, c.Code)
	}

	_, ok := CategoryOf(0)
	assert.False(t, ok)
	_, ok = CategoryOf(15)
	assert.False(t, ok)
}

func TestTradeStatusOf(t *testing.T) {
	s, ok := TradeStatusOf(TradeStatusReserved)
	assert.True(t, ok)
	assert.Equal(t, TradeStatusReserved, s.Code)

	_, ok = TradeStatusOf(4)
	assert.False(t, ok)
	assert.True(t, IsCompleted(TradeStatusCompleted))
	assert.False(t, IsCompleted(TradeStatusSelling))
}
