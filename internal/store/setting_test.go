package store

import (
	"errors"
	"testing"
)

func TestSettingRepository(t *testing.T) {
	s := newTestStore(t)
	repo := s.Settings()

	t.Run("get missing key", func(t *testing.T) {
		_, err := repo.Get(SettingTriggerMode)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound, got %v", err)
		}
	})

	t.Run("set and get", func(t *testing.T) {
		if err := repo.Set(SettingTriggerMode, "open"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := repo.Get(SettingTriggerMode)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "open" {
			t.Errorf("Get() = %q, want %q", got, "open")
		}
	})

	t.Run("set upserts", func(t *testing.T) {
		if err := repo.Set(SettingTriggerMode, "point"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		got, err := repo.Get(SettingTriggerMode)
		if err != nil {
			t.Fatalf("Get() error = %v", err)
		}
		if got != "point" {
			t.Errorf("Get() = %q, want %q", got, "point")
		}
	})

	t.Run("all", func(t *testing.T) {
		if err := repo.Set(SettingAutoExport, "svg"); err != nil {
			t.Fatalf("Set() error = %v", err)
		}

		all, err := repo.All()
		if err != nil {
			t.Fatalf("All() error = %v", err)
		}
		if len(all) != 2 {
			t.Fatalf("expected 2 settings, got %d", len(all))
		}
		if all[SettingTriggerMode] != "point" || all[SettingAutoExport] != "svg" {
			t.Errorf("unexpected settings map: %v", all)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(SettingAutoExport); err != nil {
			t.Fatalf("Delete() error = %v", err)
		}
		if _, err := repo.Get(SettingAutoExport); !errors.Is(err, ErrNotFound) {
			t.Errorf("expected ErrNotFound after delete, got %v", err)
		}
		if err := repo.Delete(SettingAutoExport); err != nil {
			t.Errorf("Delete() should be idempotent, got %v", err)
		}
	})
}
