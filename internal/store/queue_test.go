package store

import (
	"testing"

	"github.com/TWRT/garden-tasks/internal/models"
)

func TestPendingQueue_SortedByTimestamp(t *testing.T) {
	q := NewPendingQueue()
	q.Enqueue(models.PendingChange{TaskId: "c", Type: models.ChangeDelete, Timestamp: 300})
	q.Enqueue(models.PendingChange{TaskId: "a", Type: models.ChangeDelete, Timestamp: 100})
	q.Enqueue(models.PendingChange{TaskId: "b", Type: models.ChangeDelete, Timestamp: 200})

	sorted := q.Sorted()
	want := []string{"a", "b", "c"}
	for i, id := range want {
		if sorted[i].TaskId != id {
			t.Fatalf("Sorted()[%d] = %s, want %s", i, sorted[i].TaskId, id)
		}
	}
}

func TestPendingQueue_StableOnEqualTimestamps(t *testing.T) {
	q := NewPendingQueue()
	q.Enqueue(models.PendingChange{TaskId: "first", Type: models.ChangeDelete, Timestamp: 100})
	q.Enqueue(models.PendingChange{TaskId: "second", Type: models.ChangeDelete, Timestamp: 100})
	q.Enqueue(models.PendingChange{TaskId: "third", Type: models.ChangeDelete, Timestamp: 100})

	sorted := q.Sorted()
	want := []string{"first", "second", "third"}
	for i, id := range want {
		if sorted[i].TaskId != id {
			t.Fatalf("same-millisecond changes reordered: got %s at %d, want %s", sorted[i].TaskId, i, id)
		}
	}
}

func TestPendingQueue_SortedDoesNotMutate(t *testing.T) {
	q := NewPendingQueue()
	q.Enqueue(models.PendingChange{TaskId: "b", Type: models.ChangeDelete, Timestamp: 200})
	q.Enqueue(models.PendingChange{TaskId: "a", Type: models.ChangeDelete, Timestamp: 100})

	_ = q.Sorted()

	items := q.Items()
	if items[0].TaskId != "b" || items[1].TaskId != "a" {
		t.Fatalf("underlying queue reordered by Sorted(): %+v", items)
	}
}

func TestPendingQueue_Replace(t *testing.T) {
	q := NewPendingQueue()
	q.Enqueue(models.PendingChange{TaskId: "a", Type: models.ChangeDelete, Timestamp: 100})
	q.Enqueue(models.PendingChange{TaskId: "b", Type: models.ChangeDelete, Timestamp: 200})

	q.Replace([]models.PendingChange{{TaskId: "b", Type: models.ChangeDelete, Timestamp: 200}})

	if q.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", q.Len())
	}
	if q.Items()[0].TaskId != "b" {
		t.Fatalf("remaining = %s, want b", q.Items()[0].TaskId)
	}
}
