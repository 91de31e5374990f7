package prompt

import (
	"context"
	"sync"

	"callagent/internal/llm"
)

// HistoryStore keeps the per-caller conversation replayed to the model.
type HistoryStore interface {
	Append(ctx context.Context, callerID, role, content string) error
	// Recent returns up to limit of the caller's latest messages, oldest
	// first. A limit of zero or less returns nothing.
	Recent(ctx context.Context, callerID string, limit int) ([]llm.Message, error)
}

type MemoryHistory struct {
	mu       sync.RWMutex
	messages map[string][]llm.Message
}

func NewMemoryHistory() *MemoryHistory {
	return &MemoryHistory{messages: make(map[string][]llm.Message)}
}

func (h *MemoryHistory) Append(ctx context.Context, callerID, role, content string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.messages[callerID] = append(h.messages[callerID], llm.Message{Role: role, Content: content})
	return nil
}

func (h *MemoryHistory) Recent(ctx context.Context, callerID string, limit int) ([]llm.Message, error) {
	if limit <= 0 {
		return nil, nil
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	all := h.messages[callerID]
	if len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]llm.Message, len(all))
	copy(out, all)
	return out, nil
}
