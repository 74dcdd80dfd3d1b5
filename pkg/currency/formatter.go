// Package currency renders prices for display.
package currency

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultCode is used when no currency code is supplied.
const DefaultCode = "USD"

// symbols holds en-US display symbols. Codes not listed render as "CODE ".
var symbols = map[string]string{
	"USD": "$",
	"EUR": "€",
	"GBP": "£",
	"JPY": "¥",
	"INR": "₹",
	"KRW": "₩",
	"ILS": "₪",
	"VND": "₫",
	"CAD": "CA$",
	"AUD": "A$",
	"NZD": "NZ$",
	"HKD": "HK$",
	"MXN": "MX$",
	"CNY": "CN¥",
	"BRL": "R$",
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatPrice renders amount in en-US style with no fraction digits, e.g. "$1,235".
// Rounding is half away from zero. NaN renders as "<symbol>NaN".
func FormatPrice(amount float64, code string) string {
	prefix := Prefix(code)

	switch {
	case math.IsNaN(amount):
		return prefix + "NaN"
	case math.IsInf(amount, 1):
		return prefix + "∞"
	case math.IsInf(amount, -1):
		return "-" + prefix + "∞"
	}

	rounded := math.Round(amount)
	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	result := prefix + groupDigits(rounded)
	if negative {
		result = "-" + result
	}
	return result
}

// FormatPriceString parses a numeric price string and formats it.
// Unparseable input renders as "<symbol>NaN".
func FormatPriceString(total, code string) string {
	v, err := strconv.ParseFloat(strings.TrimSpace(total), 64)
	if err != nil {
		v = math.NaN()
	}
	return FormatPrice(v, code)
}

// Prefix returns the display prefix for code: a symbol when known, otherwise
// the upper-cased ISO code followed by a space.
func Prefix(code string) string {
	code = normalize(code)
	if sym, ok := symbols[code]; ok {
		return sym
	}
	return code + " "
}

// FormatIDR renders amount as Indonesian Rupiah with dotted grouping, e.g. "IDR 1.500.000".
func FormatIDR(amount float64) string {
	rounded := math.Round(amount)

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	intStr := fmt.Sprintf("%.0f", rounded)
	formatted := addThousandsSeparator(intStr, ".")

	result := "IDR " + formatted
	if negative {
		result = "-" + result
	}

	return result
}

func normalize(code string) string {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return DefaultCode
	}
	if unit, err := currency.ParseISO(code); err == nil {
		return unit.String()
	}
	return code
}

// groupDigits formats a non-negative whole number with "," grouping.
func groupDigits(v float64) string {
	if v < math.MaxInt64 {
		return printer.Sprintf("%d", int64(v))
	}
	return addThousandsSeparator(fmt.Sprintf("%.0f", v), ",")
}

func addThousandsSeparator(s string, sep string) string {
	n := len(s)
	if n <= 3 {
		return s
	}

	numSeps := (n - 1) / 3
	result := make([]byte, n+numSeps)

	j := len(result) - 1
	for i := n - 1; i >= 0; i-- {
		result[j] = s[i]
		j--

		pos := n - i
		if pos%3 == 0 && i > 0 {
			result[j] = sep[0]
			j--
		}
	}

	return string(result)
}
