package store

import (
	"sort"

	"github.com/TWRT/garden-tasks/internal/models"
)

// PendingQueue is the ordered log of mutations waiting for connectivity.
// Append-only, except that successfully replayed entries are removed.
type PendingQueue struct {
	changes []models.PendingChange
}

func NewPendingQueue() *PendingQueue {
	return &PendingQueue{}
}

func (q *PendingQueue) Enqueue(change models.PendingChange) {
	q.changes = append(q.changes, change)
}

func (q *PendingQueue) Len() int {
	return len(q.changes)
}

// Sorted returns a copy ordered by timestamp ascending. The sort is stable, so
// two changes queued in the same millisecond keep their append order.
func (q *PendingQueue) Sorted() []models.PendingChange {
	out := make([]models.PendingChange, len(q.changes))
	copy(out, q.changes)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp < out[j].Timestamp
	})
	return out
}

func (q *PendingQueue) Items() []models.PendingChange {
	out := make([]models.PendingChange, len(q.changes))
	copy(out, q.changes)
	return out
}

func (q *PendingQueue) Replace(changes []models.PendingChange) {
	q.changes = changes
}
