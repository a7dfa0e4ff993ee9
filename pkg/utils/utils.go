// pkg/utils/utils.go
package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrBadTimestamp - строка не похожа на ISO-8601 с часовым поясом
var ErrBadTimestamp = errors.New("unparsable timestamp")

// Форматы, которые принимаем для pairCreatedAt
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02T15:04Z07:00",
	"2006-01-02 15:04Z07:00",
}

// FormatDuration форматирует продолжительность в читаемый вид
func FormatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60

	if hours > 0 {
		return fmt.Sprintf("%dч %dм", hours, minutes)
	}
	if minutes > 0 {
		return fmt.Sprintf("%dм", minutes)
	}
	return fmt.Sprintf("%dс", int(d.Seconds()))
}

// FormatPercent форматирует процентное значение
func FormatPercent(value float64) string {
	if value > 0 {
		return fmt.Sprintf("+%.2f%%", value)
	}
	return fmt.Sprintf("%.2f%%", value)
}

// FormatNumber форматирует число с суффиксом K/M/B
func FormatNumber(value float64, decimals int) string {
	switch {
	case value >= 1e9:
		return strconv.FormatFloat(value/1e9, 'f', decimals, 64) + "B"
	case value >= 1e6:
		return strconv.FormatFloat(value/1e6, 'f', decimals, 64) + "M"
	case value >= 1e3:
		return strconv.FormatFloat(value/1e3, 'f', decimals, 64) + "K"
	default:
		return strconv.FormatFloat(value, 'f', decimals, 64)
	}
}

// PercentageChange - изменение в процентах, 0 при нулевой базе
func PercentageChange(oldValue, newValue float64) float64 {
	if oldValue == 0 {
		return 0
	}
	return (newValue - oldValue) / oldValue * 100
}

// ParseTimestamp разбирает ISO-8601 время; хвостовой Z допускается.
// Время без часового пояса считается неразборчивым.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if strings.HasSuffix(value, "Z") {
		value = strings.TrimSuffix(value, "Z") + "+00:00"
	}

	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrBadTimestamp, value)
}
