package utils

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var currencyPrinter = message.NewPrinter(language.English)

// FormatCurrency renders an amount with two decimals and thousands separators.
// Example: 1234.5 -> "1,234.50"
func FormatCurrency(amount decimal.Decimal) string {
	formatted := amount.StringFixed(2)

	sign := ""
	if strings.HasPrefix(formatted, "-") {
		sign = "-"
		formatted = formatted[1:]
	}

	integerPart, decimalPart, _ := strings.Cut(formatted, ".")
	if n, err := strconv.ParseInt(integerPart, 10, 64); err == nil {
		integerPart = currencyPrinter.Sprintf("%d", n)
	}

	return sign + integerPart + "." + decimalPart
}
