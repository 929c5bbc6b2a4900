package tasks

import (
	"math/rand/v2"
	"slices"
	"testing"
	"time"
)

func TestGenerateCountAndMembership(t *testing.T) {
	today := Date{2026, time.October, 18}
	owners := []string{"A", "B", "C"}

	for _, n := range []int{1, 2, 12, 100} {
		g := NewSeededGenerator(uint64(n), owners)
		got := g.Generate(n, today)
		if len(got) != n {
			t.Fatalf("Generate(%d) returned %d tasks", n, len(got))
		}
		for i, task := range got {
			if task.ID != i+1 {
				t.Errorf("task %d has ID %d", i, task.ID)
			}
			if !slices.Contains(owners, task.Owner) {
				t.Errorf("task %d has unknown owner %q", task.ID, task.Owner)
			}
			if !task.Status.Valid() {
				t.Errorf("task %d has invalid status %q", task.ID, task.Status)
			}
			if !task.Sentiment.Valid() {
				t.Errorf("task %d has invalid sentiment %d", task.ID, task.Sentiment)
			}
			offset := today.DaysUntil(task.Deadline)
			if offset < MinDeadlineOffset || offset > MaxDeadlineOffset {
				t.Errorf("task %d deadline offset %d outside [%d, %d]",
					task.ID, offset, MinDeadlineOffset, MaxDeadlineOffset)
			}
		}
	}
}

func TestGenerateNames(t *testing.T) {
	got := NewSeededGenerator(1, nil).Generate(3, Date{2026, time.January, 1})
	for i, want := range []string{"Task #1", "Task #2", "Task #3"} {
		if got[i].Name != want {
			t.Errorf("task %d name = %q, want %q", i, got[i].Name, want)
		}
	}
}

func TestGenerateNonPositive(t *testing.T) {
	g := NewSeededGenerator(1, nil)
	for _, n := range []int{0, -3} {
		got := g.Generate(n, Date{2026, time.January, 1})
		if got == nil || len(got) != 0 {
			t.Errorf("Generate(%d) = %v, want empty slice", n, got)
		}
	}
}

func TestGenerateDeterministic(t *testing.T) {
	today := Date{2026, time.October, 18}
	a := NewSeededGenerator(42, nil).Generate(20, today)
	b := NewSeededGenerator(42, nil).Generate(20, today)
	if !slices.Equal(a, b) {
		t.Error("same seed produced different collections")
	}

	c := NewSeededGenerator(43, nil).Generate(20, today)
	if slices.Equal(a, c) {
		t.Error("different seeds produced identical collections")
	}
}

func TestGenerateCoversDeadlineWindow(t *testing.T) {
	today := Date{2026, time.October, 18}
	g := NewGenerator(rand.NewPCG(7, 11), nil)
	seen := make(map[int]bool)
	for _, task := range g.Generate(2000, today) {
		seen[today.DaysUntil(task.Deadline)] = true
	}
	for off := MinDeadlineOffset; off <= MaxDeadlineOffset; off++ {
		if !seen[off] {
			t.Errorf("deadline offset %d never generated", off)
		}
	}
}

func TestNewGeneratorDefaultsOwners(t *testing.T) {
	g := NewSeededGenerator(1, nil)
	if !slices.Equal(g.Owners(), DefaultOwners) {
		t.Errorf("Owners() = %v, want %v", g.Owners(), DefaultOwners)
	}

	roster := []string{"X"}
	g = NewSeededGenerator(1, roster)
	roster[0] = "mutated"
	if g.Owners()[0] != "X" {
		t.Error("generator should copy the roster")
	}
}

func TestNewSession(t *testing.T) {
	today := Date{2026, time.October, 18}
	s := NewSession(99, nil, 12, today)
	if s.ID == "" {
		t.Error("expected session ID")
	}
	if s.Seed != 99 || s.Today != today {
		t.Errorf("session seed/today = %d/%s", s.Seed, s.Today)
	}
	if len(s.Tasks) != 12 {
		t.Errorf("len(Tasks) = %d, want 12", len(s.Tasks))
	}

	other := NewSession(99, nil, 12, today)
	if other.ID == s.ID {
		t.Error("sessions should get distinct IDs")
	}
	if !slices.Equal(other.Tasks, s.Tasks) {
		t.Error("same seed should reproduce the same tasks")
	}
}
