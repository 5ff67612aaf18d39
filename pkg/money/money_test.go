package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRound(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"9.975", "9.98"},
		{"9.974", "9.97"},
		{"0.005", "0.01"},
		{"-0.005", "-0.01"},
		{"100", "100"},
		{"114.97500000001", "114.98"},
	}

	for _, tt := range tests {
		got := Round(decimal.RequireFromString(tt.in))
		assert.True(t, got.Equal(decimal.RequireFromString(tt.want)),
			"Round(%s) = %s, want %s", tt.in, got, tt.want)
	}
}

func TestWithinOneCent(t *testing.T) {
	a := decimal.RequireFromString("114.98")
	assert.True(t, WithinOneCent(a, decimal.RequireFromString("114.98")))
	assert.True(t, WithinOneCent(a, decimal.RequireFromString("114.97")))
	assert.True(t, WithinOneCent(a, decimal.RequireFromString("114.99")))
	assert.False(t, WithinOneCent(a, decimal.RequireFromString("114.96")))
	assert.False(t, WithinOneCent(a, decimal.RequireFromString("115.00")))
}
