package utils

import (
	"fmt"
	"strings"
)

// FormatUSD formats an amount as a USD string, e.g. 1234.5 -> "$1,234.50".
func FormatUSD(amount float64) string {
	return "$" + groupThousands(fmt.Sprintf("%.2f", amount))
}

// FormatKHR formats an integer riel amount, e.g. 40600 -> "40,600៛".
func FormatKHR(amount int64) string {
	return groupThousands(fmt.Sprintf("%d", amount)) + "៛"
}

func groupThousands(formatted string) string {
	intPart := formatted
	decPart := ""
	if i := strings.IndexByte(formatted, '.'); i >= 0 {
		intPart, decPart = formatted[:i], formatted[i:]
	}

	neg := strings.HasPrefix(intPart, "-")
	if neg {
		intPart = intPart[1:]
	}

	var groups []string
	for i := len(intPart); i > 0; i -= 3 {
		start := i - 3
		if start < 0 {
			start = 0
		}
		groups = append([]string{intPart[start:i]}, groups...)
	}

	out := strings.Join(groups, ",") + decPart
	if neg {
		out = "-" + out
	}
	return out
}
