// Package format provides stateless currency formatting. Separators are
// explicit parameters; nothing here touches process-wide locale state.
package format

import (
	"fmt"
	"math"
	"strings"
)

// Convention describes how a currency value is rendered.
type Convention struct {
	Symbol       string
	ThousandsSep string
	DecimalSep   string
}

// BRL is the Brazilian convention, e.g. "R$ 1.234,56".
var BRL = Convention{Symbol: "R$ ", ThousandsSep: ".", DecimalSep: ","}

// USD is the US convention, e.g. "$1,234.56".
var USD = Convention{Symbol: "$", ThousandsSep: ",", DecimalSep: "."}

// Currency renders an amount with two decimals under the given convention.
// Negative amounts carry a leading minus before the symbol.
func Currency(amount float64, conv Convention) string {
	formatted := groupDigits(math.Abs(amount), conv)
	if amount < 0 {
		return "-" + conv.Symbol + formatted
	}
	return conv.Symbol + formatted
}

func groupDigits(value float64, conv Convention) string {
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
				builder.WriteString(conv.ThousandsSep)
			}
			builder.WriteRune(digit)
		}
		intPart = builder.String()
	}

	return intPart + conv.DecimalSep + decPart
}
