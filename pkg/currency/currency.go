package currency

import (
	"fmt"
	"math"
	"strconv"
)

// Format renders a price as a whole-euro amount with space-separated
// thousands groups, e.g. 1234.5 -> "1 235 €".
func Format(value float64) string {
	rounded := int64(math.Round(value))

	negative := rounded < 0
	if negative {
		rounded = -rounded
	}

	digits := strconv.FormatInt(rounded, 10)
	grouped := groupThousands(digits)

	if negative {
		return fmt.Sprintf("-%s €", grouped)
	}
	return fmt.Sprintf("%s €", grouped)
}

// groupThousands inserts a space every three digits from the right.
func groupThousands(digits string) string {
	n := len(digits)
	if n <= 3 {
		return digits
	}

	out := make([]byte, 0, n+n/3)
	for i, c := range []byte(digits) {
		if i > 0 && (n-i)%3 == 0 {
			out = append(out, ' ')
		}
		out = append(out, c)
	}
	return string(out)
}
