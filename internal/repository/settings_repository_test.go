package repository

import (
	"path/filepath"
	"testing"
)

func newSettingsRepo(t *testing.T) *SettingsRepository {
	t.Helper()
	db, err := InitDB(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("InitDB() err = %v, want nil", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewSettingsRepository(db)
}

func TestSettingsRepository_EmptyByDefault(t *testing.T) {
	repo := newSettingsRepo(t)

	settings, err := repo.Get()
	if err != nil {
		t.Fatalf("Get() err = %v, want nil", err)
	}
	if settings.IsConfigured || settings.AirtableToken != "" {
		t.Fatalf("Get() = %+v, want zero settings", settings)
	}
}

func TestSettingsRepository_SaveAndGet(t *testing.T) {
	repo := newSettingsRepo(t)

	in := Settings{
		AirtableToken: "tok-123",
		AirtableBase:  "app-base",
		AirtableTable: "Tasks",
		IsConfigured:  true,
	}
	if err := repo.Save(in); err != nil {
		t.Fatalf("Save() err = %v, want nil", err)
	}

	got, err := repo.Get()
	if err != nil {
		t.Fatalf("Get() err = %v, want nil", err)
	}
	if got != in {
		t.Fatalf("Get() = %+v, want %+v", got, in)
	}
}

func TestSettingsRepository_SaveUpserts(t *testing.T) {
	repo := newSettingsRepo(t)

	if err := repo.Save(Settings{AirtableToken: "old"}); err != nil {
		t.Fatalf("Save() err = %v, want nil", err)
	}
	if err := repo.Save(Settings{AirtableToken: "new", AirtableBase: "b", AirtableTable: "t", IsConfigured: true}); err != nil {
		t.Fatalf("Save() err = %v, want nil", err)
	}

	got, _ := repo.Get()
	if got.AirtableToken != "new" || !got.IsConfigured {
		t.Fatalf("Get() = %+v, want the second save", got)
	}
}

func TestSettingsRepository_Clear(t *testing.T) {
	repo := newSettingsRepo(t)

	if err := repo.Save(Settings{AirtableToken: "tok", IsConfigured: true}); err != nil {
		t.Fatalf("Save() err = %v, want nil", err)
	}
	if err := repo.Clear(); err != nil {
		t.Fatalf("Clear() err = %v, want nil", err)
	}

	got, err := repo.Get()
	if err != nil {
		t.Fatalf("Get() err = %v, want nil", err)
	}
	if got != (Settings{}) {
		t.Fatalf("Get() after Clear = %+v, want zero settings", got)
	}
}
