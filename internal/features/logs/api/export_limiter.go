package logs_api

import (
	"fmt"

	"golang.org/x/sync/semaphore"
)

const maxConcurrentExports = 3

// ExportLimiter caps how many exports are built at the same time. Each
// export reads and encodes the whole stream.
type ExportLimiter struct {
	slots         *semaphore.Weighted
	maxConcurrent int64
}

func NewExportLimiter(maxConcurrent int64) *ExportLimiter {
	return &ExportLimiter{
		slots:         semaphore.NewWeighted(maxConcurrent),
		maxConcurrent: maxConcurrent,
	}
}

func (l *ExportLimiter) AcquireExportSlot() error {
	if !l.slots.TryAcquire(1) {
		return &ValidationError{
			Code:    ErrorTooManyConcurrentExports,
			Message: fmt.Sprintf("maximum concurrent exports exceeded (%d)", l.maxConcurrent),
		}
	}

	return nil
}

func (l *ExportLimiter) ReleaseExportSlot() {
	l.slots.Release(1)
}
