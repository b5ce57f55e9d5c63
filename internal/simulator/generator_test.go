package simulator

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerator_Bounds(t *testing.T) {
	gen := NewGenerator(DefaultSymbol, 1)

	for i := 0; i < 1000; i++ {
		req := gen.Next()

		assert.Equal(t, DefaultSymbol, req.Symbol)
		assert.Contains(t, []string{"LIMIT", "MARKET"}, req.Type)
		assert.Contains(t, []string{"BUY", "SELL"}, req.Side)

		price, err := strconv.ParseFloat(req.Price, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, price, 142.50)
		assert.LessOrEqual(t, price, 157.50)

		quantity, err := strconv.ParseFloat(req.Quantity, 64)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, quantity, 1.0)
		assert.LessOrEqual(t, quantity, 500.0)
	}
}

func TestGenerator_TwoDecimalPlaces(t *testing.T) {
	gen := NewGenerator(DefaultSymbol, 42)

	for i := 0; i < 100; i++ {
		req := gen.Next()
		assert.Regexp(t, `^\d+\.\d{2}$`, req.Price)
		assert.Regexp(t, `^\d+\.\d{2}$`, req.Quantity)
	}
}

func TestGenerator_DeterministicForSeed(t *testing.T) {
	a := NewGenerator(DefaultSymbol, 7)
	b := NewGenerator(DefaultSymbol, 7)

	for i := 0; i < 50; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}
