package store

import (
	"testing"
	"time"

	"github.com/TWRT/garden-tasks/internal/models"
)

func TestRecordCache_MissWhenEmpty(t *testing.T) {
	cache := NewRecordCache()

	if _, ok := cache.Get(models.ViewToday, time.Now()); ok {
		t.Fatal("Get() ok = true, want miss on empty cache")
	}
}

func TestRecordCache_TTLWindow(t *testing.T) {
	base := day("2024-01-10")
	tasks := []models.Task{{Id: "rec1", Title: "Water tomatoes", DueDate: base}}

	tests := []struct {
		name    string
		elapsed time.Duration
		wantHit bool
	}{
		{"fresh", 0, true},
		{"just inside ttl", CacheDuration - time.Second, true},
		{"exactly at ttl", CacheDuration, false},
		{"past ttl", CacheDuration + time.Minute, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cache := NewRecordCache()
			cache.Put(models.ViewToday, tasks, base)

			got, ok := cache.Get(models.ViewToday, base.Add(tt.elapsed))
			if ok != tt.wantHit {
				t.Fatalf("Get() ok = %v, want %v", ok, tt.wantHit)
			}
			if ok && len(got) != 1 {
				t.Fatalf("Get() len = %d, want 1", len(got))
			}
		})
	}
}

func TestRecordCache_ViewsAreIndependent(t *testing.T) {
	base := day("2024-01-10")
	cache := NewRecordCache()
	cache.Put(models.ViewToday, []models.Task{{Id: "rec1", DueDate: base}}, base)

	if _, ok := cache.Get(models.ViewUpcoming, base); ok {
		t.Fatal("Get(upcoming) ok = true, want miss for a view never written")
	}
	if _, ok := cache.Get(models.ViewToday, base); !ok {
		t.Fatal("Get(today) ok = false, want hit")
	}
}

func TestRecordCache_ExpiredEntryNotEvictedByRead(t *testing.T) {
	base := day("2024-01-10")
	cache := NewRecordCache()
	cache.Put(models.ViewAll, []models.Task{{Id: "rec1", DueDate: base}}, base)

	if _, ok := cache.Get(models.ViewAll, base.Add(CacheDuration+time.Minute)); ok {
		t.Fatal("Get() ok = true, want miss after ttl")
	}
	// reading never mutates; the stale entry is still there
	if _, ok := cache.Entries()[models.ViewAll]; !ok {
		t.Fatal("expired entry should remain stored after a read")
	}
}
