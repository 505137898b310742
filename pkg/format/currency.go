// Package format renders report numbers as display strings.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Currency returns a dollar amount with thousands separators and two decimals.
// The sign follows the dollar symbol (e.g., "$-1,234.56").
func Currency(amount float64) string {
	return "$" + NumericCurrency(amount)
}

// NumericCurrency returns a currency string without a currency symbol but with separators (e.g., "-1,234.56").
func NumericCurrency(amount float64) string {
	if math.IsInf(amount, 0) || math.IsNaN(amount) {
		return fmt.Sprintf("%.2f", amount)
	}
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	formatted := formatPositiveCurrency(math.Abs(amount))
	if sign != "" && formatted == "0.00" {
		return formatted
	}
	return sign + formatted
}

// Months renders a duration in months with one decimal ("6.2 months").
func Months(value float64) string {
	return fmt.Sprintf("%.1f months", value)
}

// Percent renders a percentage with one decimal ("476.0%").
func Percent(value float64) string {
	return fmt.Sprintf("%.1f%%", value)
}

func formatPositiveCurrency(value float64) string {
	formatted := fmt.Sprintf("%.2f", value)
	parts := strings.SplitN(formatted, ".", 2)
	intPart := parts[0]
	decPart := "00"
	if len(parts) == 2 {
		decPart = parts[1]
	}

	if len(intPart) > 3 {
		var builder strings.Builder
		for i, digit := range intPart {
			if i > 0 && (len(intPart)-i)%3 == 0 {
				builder.WriteByte(',')
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + "." + decPart
}
