// internal/delivery/telegram/formatters/recommendation/formatter.go
package recommendation

import (
	"fmt"
	"strings"
)

// Formatter форматирует вывод рекомендаций
type Formatter struct{}

// NewFormatter создает новый форматтер вывода
func NewFormatter() *Formatter {
	return &Formatter{}
}

// FormatList - нумерованный список с иконкой по смыслу рекомендации
func (f *Formatter) FormatList(recommendations []string) string {
	if len(recommendations) == 0 {
		return ""
	}

	var result strings.Builder
	for i, rec := range recommendations {
		result.WriteString(fmt.Sprintf("%d. %s %s\n", i+1, f.icon(rec), strings.TrimSpace(rec)))
	}
	return strings.TrimRight(result.String(), "\n")
}

func (f *Formatter) icon(rec string) string {
	switch rec {
	case HighPumpActivity:
		return "🚨"
	case MultipleDumps:
		return "⚠️"
	case StrongHolderGrowth:
		return "📈"
	default:
		return "✅"
	}
}
