package utils

import (
	"github.com/shopspring/decimal"
)

// zeroDecimalCurrencies are the common currencies with no minor unit.
var zeroDecimalCurrencies = map[string]struct{}{
	"JPY": {}, "KRW": {}, "VND": {}, "CLP": {}, "ISK": {},
}

// CurrencyPrecision returns the number of decimal places for a currency.
func CurrencyPrecision(currency string) int32 {
	if _, ok := zeroDecimalCurrencies[currency]; ok {
		return 0
	}
	return 2
}

// FormatMinorUnits renders a signed minor-unit amount as a decimal string in
// the currency's precision.
// Example: amount -1250 with USD returns "-12.50"; 500 with JPY returns "500".
func FormatMinorUnits(amount int64, currency string) string {
	precision := CurrencyPrecision(currency)
	return decimal.New(amount, -precision).StringFixed(precision)
}
