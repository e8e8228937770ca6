package store

import (
	"testing"
	"time"

	"mascotd/internal/pet"
)

// testDB is a helper that creates an in-memory DB for testing.
func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetPetAbsent(t *testing.T) {
	db := testDB(t)

	p, err := db.GetPet(42)
	if err != nil {
		t.Fatalf("GetPet: %v", err)
	}
	if p != nil {
		t.Errorf("expected nil for absent guild, got %+v", p)
	}
}

func TestSaveAndGetPet(t *testing.T) {
	db := testDB(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	p := pet.New(42, now)
	p.Name = "Pixel"
	p.Hunger = 73
	p.Form = "day3_good"
	p.LastCheckpoint = 3
	p.LastCaretakerID = 1001

	if err := db.SavePet(p); err != nil {
		t.Fatalf("SavePet: %v", err)
	}

	got, err := db.GetPet(42)
	if err != nil {
		t.Fatalf("GetPet: %v", err)
	}
	if got == nil {
		t.Fatal("expected pet, got nil")
	}
	if got.Name != "Pixel" || got.Hunger != 73 || got.Form != "day3_good" || got.LastCheckpoint != 3 {
		t.Errorf("round trip mismatch: %+v", got)
	}
	if !got.BornAt.Equal(now) || !got.UpdatedAt.Equal(now) {
		t.Errorf("instants mismatch: born=%v updated=%v", got.BornAt, got.UpdatedAt)
	}
	if got.LastLoveDate != "2025-06-15" {
		t.Errorf("last_love_date = %q", got.LastLoveDate)
	}
	if got.DeadUntil != nil {
		t.Errorf("deadUntil = %v, want nil", got.DeadUntil)
	}
	if got.LastCaretakerID != 1001 {
		t.Errorf("lastCaretakerID = %d", got.LastCaretakerID)
	}
}

func TestSavePetUpsert(t *testing.T) {
	db := testDB(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	p := pet.New(42, now)
	if err := db.SavePet(p); err != nil {
		t.Fatalf("SavePet: %v", err)
	}

	p.Hunger = 10
	until := now.Add(time.Hour)
	p.DeadUntil = &until
	p.LastWords = "farewell"
	if err := db.SavePet(p); err != nil {
		t.Fatalf("second SavePet: %v", err)
	}

	got, _ := db.GetPet(42)
	if got.Hunger != 10 {
		t.Errorf("hunger = %d, want 10", got.Hunger)
	}
	if got.DeadUntil == nil || !got.DeadUntil.Equal(until) {
		t.Errorf("deadUntil = %v, want %v", got.DeadUntil, until)
	}
	if got.LastWords != "farewell" {
		t.Errorf("lastWords = %q", got.LastWords)
	}

	pets, err := db.ListPets()
	if err != nil {
		t.Fatalf("ListPets: %v", err)
	}
	if len(pets) != 1 {
		t.Errorf("expected 1 pet, got %d", len(pets))
	}
}

func TestListPets(t *testing.T) {
	db := testDB(t)
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	for _, id := range []int64{3, 1, 2} {
		if err := db.SavePet(pet.New(id, now)); err != nil {
			t.Fatalf("SavePet(%d): %v", id, err)
		}
	}

	pets, err := db.ListPets()
	if err != nil {
		t.Fatalf("ListPets: %v", err)
	}
	if len(pets) != 3 {
		t.Fatalf("expected 3 pets, got %d", len(pets))
	}
	for i, want := range []int64{1, 2, 3} {
		if pets[i].GuildID != want {
			t.Errorf("pets[%d].GuildID = %d, want %d", i, pets[i].GuildID, want)
		}
	}
}
