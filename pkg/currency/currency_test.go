package currency

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormat(t *testing.T) {
	assert.Equal(t, "R$ 103.50", Format(decimal.NewFromFloat(103.5)))
	assert.Equal(t, "R$ 53.00", Format(decimal.NewFromInt(53)))
	assert.Equal(t, "R$ 0.00", Format(decimal.Zero))
}

func TestFormatPoints(t *testing.T) {
	assert.Equal(t, "450 pontos", FormatPoints(450))
	assert.Equal(t, "1.250 pontos", FormatPoints(1250))
}
