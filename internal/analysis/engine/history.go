// internal/analysis/engine/history.go
package engine

import (
	"sync"

	"web3-token-analytics-bot/internal/types/analysis"
)

// DefaultHistorySize - емкость истории по умолчанию
const DefaultHistorySize = 24

// History - ограниченная очередь прошлых результатов, старые вытесняются
type History struct {
	items    []analysis.AnalysisResult
	capacity int
	mu       sync.RWMutex
}

// NewHistory создает историю; емкость <= 0 заменяется значением по умолчанию
func NewHistory(capacity int) *History {
	if capacity <= 0 {
		capacity = DefaultHistorySize
	}
	return &History{
		items:    make([]analysis.AnalysisResult, 0, capacity),
		capacity: capacity,
	}
}

// Append добавляет результат
func (h *History) Append(result analysis.AnalysisResult) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if len(h.items) == h.capacity {
		copy(h.items, h.items[1:])
		h.items = h.items[:len(h.items)-1]
	}
	h.items = append(h.items, result)
}

// Latest - последний результат
func (h *History) Latest() (analysis.AnalysisResult, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if len(h.items) == 0 {
		return analysis.AnalysisResult{}, false
	}
	return h.items[len(h.items)-1], true
}

// All - копия истории от старых к новым
func (h *History) All() []analysis.AnalysisResult {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]analysis.AnalysisResult, len(h.items))
	copy(out, h.items)
	return out
}

func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.items)
}

func (h *History) Capacity() int {
	return h.capacity
}
