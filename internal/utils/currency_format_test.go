package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatMinorUnits(t *testing.T) {
	tests := []struct {
		name     string
		amount   int64
		currency string
		want     string
	}{
		{name: "two decimal currency", amount: 5000, currency: "USD", want: "50.00"},
		{name: "negative amount", amount: -1250, currency: "EUR", want: "-12.50"},
		{name: "sub unit amount", amount: 7, currency: "USD", want: "0.07"},
		{name: "zero decimal currency", amount: 500, currency: "JPY", want: "500"},
		{name: "negative zero decimal", amount: -500, currency: "KRW", want: "-500"},
		{name: "unknown currency defaults to two decimals", amount: 100, currency: "XYZ", want: "1.00"},
		{name: "zero", amount: 0, currency: "USD", want: "0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FormatMinorUnits(tt.amount, tt.currency))
		})
	}
}

func TestCurrencyPrecision(t *testing.T) {
	assert.Equal(t, int32(0), CurrencyPrecision("JPY"))
	assert.Equal(t, int32(2), CurrencyPrecision("USD"))
	assert.Equal(t, int32(2), CurrencyPrecision(""))
}
