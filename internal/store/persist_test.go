package store

import (
	"testing"
	"time"

	"github.com/TWRT/garden-tasks/internal/models"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	completed := time.Date(2024, 2, 1, 12, 0, 0, 0, time.UTC)
	due := time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC)

	tasks := []models.Task{
		{
			Id:              "rec1",
			Title:           "Water tomatoes",
			Description:     "twice a week",
			Status:          models.StatusDone,
			DueDate:         due,
			CompletedDate:   &completed,
			Importance:      models.ImportanceUrgent,
			Images:          []string{"https://example.com/a.jpg", "https://example.com/b.jpg"},
			AssigneeId:      "2",
			IsRepeating:     true,
			RepeatEveryDays: 3,
		},
		{
			Id:      "temp-abc",
			Title:   "Plant basil",
			Status:  models.StatusTodo,
			DueDate: due.AddDate(0, 0, 5),
			Images:  []string{},
		},
	}

	note := "queued"
	changes := []models.PendingChange{
		{TaskId: "rec1", Type: models.ChangeUpdate, Data: &models.TaskUpdate{Description: &note}, Timestamp: 1234},
		{TaskId: "rec2", Type: models.ChangeDelete, Timestamp: 5678},
	}

	cache := map[models.ViewKey]CacheEntry{
		models.ViewToday: {
			Tasks:     tasks[:1],
			Timestamp: time.UnixMilli(1700000000000),
			View:      models.ViewToday,
		},
	}

	raw, err := encodeSnapshot(tasks, changes, cache)
	if err != nil {
		t.Fatalf("encodeSnapshot() err = %v, want nil", err)
	}

	gotTasks, gotChanges, gotCache, err := decodeSnapshot(raw)
	if err != nil {
		t.Fatalf("decodeSnapshot() err = %v, want nil", err)
	}

	if len(gotTasks) != 2 {
		t.Fatalf("decoded tasks = %d, want 2", len(gotTasks))
	}
	first := gotTasks[0]
	if !first.DueDate.Equal(due) {
		t.Fatalf("dueDate = %v, want %v", first.DueDate, due)
	}
	if first.CompletedDate == nil || !first.CompletedDate.Equal(completed) {
		t.Fatalf("completedDate = %v, want %v", first.CompletedDate, completed)
	}
	if first.Title != "Water tomatoes" || first.Description != "twice a week" {
		t.Fatalf("text fields changed: %+v", first)
	}
	if first.Status != models.StatusDone || first.Importance != models.ImportanceUrgent {
		t.Fatalf("enum fields changed: %+v", first)
	}
	if len(first.Images) != 2 || first.Images[1] != "https://example.com/b.jpg" {
		t.Fatalf("images changed: %v", first.Images)
	}
	if first.AssigneeId != "2" || !first.IsRepeating || first.RepeatEveryDays != 3 {
		t.Fatalf("other fields changed: %+v", first)
	}
	if gotTasks[1].CompletedDate != nil {
		t.Fatalf("absent completedDate decoded as %v, want nil", gotTasks[1].CompletedDate)
	}

	if len(gotChanges) != 2 {
		t.Fatalf("decoded changes = %d, want 2", len(gotChanges))
	}
	if gotChanges[0].Data == nil || *gotChanges[0].Data.Description != "queued" {
		t.Fatalf("change payload lost: %+v", gotChanges[0])
	}
	if gotChanges[1].Data != nil {
		t.Fatalf("delete change gained a payload: %+v", gotChanges[1])
	}

	entry, ok := gotCache[models.ViewToday]
	if !ok {
		t.Fatal("cache entry for today missing after round trip")
	}
	if entry.Timestamp.UnixMilli() != 1700000000000 {
		t.Fatalf("cache timestamp = %d, want 1700000000000", entry.Timestamp.UnixMilli())
	}
	if entry.View != models.ViewToday || len(entry.Tasks) != 1 {
		t.Fatalf("cache entry changed: %+v", entry)
	}
}

func TestDecodeSnapshot_RejectsGarbage(t *testing.T) {
	if _, _, _, err := decodeSnapshot([]byte("not json")); err == nil {
		t.Fatal("decodeSnapshot() err = nil, want parse error")
	}
}
