// internal/delivery/telegram/formatters/utils.go
package formatters

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// NumberFormatter отвечает за форматирование чисел
type NumberFormatter struct{}

// NewNumberFormatter создает новый форматтер чисел
func NewNumberFormatter() *NumberFormatter {
	return &NumberFormatter{}
}

// FormatDollarValue форматирует долларовые значения в читаемый вид (K/M/B)
func (f *NumberFormatter) FormatDollarValue(num float64) string {
	if num <= 0 {
		return "0"
	}

	switch {
	case num >= 1_000_000_000:
		return scaled(num/1_000_000_000, "B")
	case num >= 1_000_000:
		return scaled(num/1_000_000, "M")
	case num >= 1_000:
		value := num / 1_000
		if value < 10 {
			return fmt.Sprintf("%.1fK", value)
		}
		return fmt.Sprintf("%.0fK", math.Round(value))
	case num >= 1:
		return fmt.Sprintf("%.0f", math.Round(num))
	default:
		return fmt.Sprintf("%.2f", num)
	}
}

func scaled(value float64, suffix string) string {
	switch {
	case value < 10:
		return fmt.Sprintf("%.2f%s", value, suffix)
	case value < 100:
		return fmt.Sprintf("%.1f%s", value, suffix)
	default:
		return fmt.Sprintf("%.0f%s", math.Round(value), suffix)
	}
}

// FormatCount - целое с разделителем тысяч: 1234567 -> 1,234,567
func (f *NumberFormatter) FormatCount(n int64) string {
	sign := ""
	if n < 0 {
		sign = "-"
		n = -n
	}

	digits := strconv.FormatInt(n, 10)
	var b strings.Builder
	for i, d := range digits {
		if i > 0 && (len(digits)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(d)
	}
	return sign + b.String()
}

// FormatChange - изменение цены со знаком, в единицах источника
func (f *NumberFormatter) FormatChange(change float64) string {
	return fmt.Sprintf("%+.2f", change)
}
