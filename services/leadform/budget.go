package leadform

import (
	"sync"

	"streamgrowth_app_go/services"
)

// stagedBudget caps the bytes of staged files held in memory across a manager's sessions.
// A nil budget accepts everything.
type stagedBudget struct {
	mu    sync.Mutex
	limit int64
	used  int64
}

// reserve adds n bytes, or gives them back when n is negative. Growth past the limit fails.
func (b *stagedBudget) reserve(n int64) bool {
	if b == nil || n == 0 {
		return true
	}
	b.mu.Lock()
	defer b.mu.Unlock()

	if n > 0 && b.used+n > b.limit {
		return false
	}
	b.used += n
	if b.used < 0 {
		b.used = 0
	}
	services.LeadStagedBytes.Set(float64(b.used))
	return true
}

func (b *stagedBudget) release(n int64) {
	if n > 0 {
		b.reserve(-n)
	}
}

func (b *stagedBudget) inUse() int64 {
	if b == nil {
		return 0
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.used
}

func stagedSize(file *services.StagedFile) int64 {
	if file == nil {
		return 0
	}
	return file.Size()
}
