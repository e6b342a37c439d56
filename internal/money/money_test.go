package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFormatRupiah(t *testing.T) {
	tests := []struct {
		in   int64
		want string
	}{
		{0, "Rp 0"},
		{500, "Rp 500"},
		{7000, "Rp 7.000"},
		{36000, "Rp 36.000"},
		{1250000, "Rp 1.250.000"},
		{-5000, "Rp -5.000"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRupiah(FromRupiah(tt.in)))
	}
}

func TestFormatRupiahRoundsFractions(t *testing.T) {
	assert.Equal(t, "Rp 17.500", FormatRupiah(decimal.NewFromFloat(17500.4)))
}
