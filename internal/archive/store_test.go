package archive

import (
	"errors"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"pkg.jsn.cam/fixturegen/pkg/fixture"
)

func sampleRun(id string, at time.Time) *Run {
	return &Run{
		ID:           id,
		CreatedAt:    at,
		Seed:         42,
		Strategy:     "random",
		RosterSource: "generated",
		Courses:      30,
		Students:     2,
		Classrooms:   15,
		Enrollments:  2400,
		Stats:        fixture.Stats{Courses: 30, Total: 2400, Min: 31, Max: 119, Mean: 80},
		Files:        []File{{Role: "students", Path: "out/students.csv", Bytes: 1234}},
	}
}

var sampleRoster = []fixture.Student{{ID: "Std_ID_0001", Name: "Student 1"}, {ID: "Std_ID_0002", Name: "Student 2"}}

// storeTestSuite runs the same checks against any Store implementation
func storeTestSuite(t *testing.T, newStore func(t *testing.T) Store) {
	t.Run("SaveAndGet", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		at := time.Date(2026, 10, 1, 9, 30, 0, 0, time.UTC)
		if err := store.SaveRun(sampleRun("run-1", at), sampleRoster); err != nil {
			t.Fatalf("SaveRun failed: %v", err)
		}

		got, err := store.GetRun("run-1")
		if err != nil {
			t.Fatalf("GetRun failed: %v", err)
		}
		if got.Seed != 42 || got.Enrollments != 2400 || got.Stats.Max != 119 {
			t.Errorf("GetRun returned %+v", got)
		}
		if !got.CreatedAt.Equal(at) {
			t.Errorf("CreatedAt = %v, want %v", got.CreatedAt, at)
		}
		if len(got.Files) != 1 || got.Files[0].Bytes != 1234 {
			t.Errorf("Files = %+v", got.Files)
		}
	})

	t.Run("LoadRoster", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		store.SaveRun(sampleRun("run-1", time.Now()), sampleRoster)

		roster, err := store.LoadRoster("run-1")
		if err != nil {
			t.Fatalf("LoadRoster failed: %v", err)
		}
		if !slices.Equal(roster, sampleRoster) {
			t.Errorf("LoadRoster = %v, want %v", roster, sampleRoster)
		}
	})

	t.Run("NotFound", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		if _, err := store.GetRun("missing"); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("GetRun: expected ErrRunNotFound, got %v", err)
		}
		if _, err := store.LoadRoster("missing"); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("LoadRoster: expected ErrRunNotFound, got %v", err)
		}
		if err := store.DeleteRun("missing"); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("DeleteRun: expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("ListNewestFirst", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		for i, id := range []string{"b", "c", "a"} {
			store.SaveRun(sampleRun(id, base.Add(time.Duration(i)*time.Hour)), sampleRoster)
		}

		runs, err := store.ListRuns()
		if err != nil {
			t.Fatalf("ListRuns failed: %v", err)
		}

		var ids []string
		for _, r := range runs {
			ids = append(ids, r.ID)
		}
		if want := []string{"a", "c", "b"}; !slices.Equal(ids, want) {
			t.Errorf("ListRuns order = %v, want %v", ids, want)
		}
	})

	t.Run("Delete", func(t *testing.T) {
		store := newStore(t)
		defer store.Close()

		store.SaveRun(sampleRun("run-1", time.Now()), sampleRoster)
		if err := store.DeleteRun("run-1"); err != nil {
			t.Fatalf("DeleteRun failed: %v", err)
		}

		if _, err := store.GetRun("run-1"); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Run should be gone, got %v", err)
		}
		if _, err := store.LoadRoster("run-1"); !errors.Is(err, ErrRunNotFound) {
			t.Errorf("Roster should be gone, got %v", err)
		}
	})
}

func TestBoltStore(t *testing.T) {
	storeTestSuite(t, func(t *testing.T) Store {
		store, err := OpenBolt(filepath.Join(t.TempDir(), "archive.db"))
		if err != nil {
			t.Fatalf("OpenBolt failed: %v", err)
		}
		return store
	})
}

func TestMemoryStore(t *testing.T) {
	storeTestSuite(t, func(t *testing.T) Store {
		return NewMemoryStore()
	})
}

func TestBoltStore_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "archive.db")

	store, err := OpenBolt(path)
	if err != nil {
		t.Fatalf("OpenBolt failed: %v", err)
	}
	store.SaveRun(sampleRun("persisted", time.Now()), sampleRoster)
	store.Close()

	store, err = OpenBolt(path)
	if err != nil {
		t.Fatalf("Reopen failed: %v", err)
	}
	defer store.Close()

	roster, err := store.LoadRoster("persisted")
	if err != nil {
		t.Fatalf("LoadRoster after reopen failed: %v", err)
	}
	if len(roster) != len(sampleRoster) {
		t.Errorf("Got %d students after reopen, want %d", len(roster), len(sampleRoster))
	}
}
