package tasks

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

// Deadlines are drawn uniformly from [today+MinDeadlineOffset, today+MaxDeadlineOffset].
const (
	MinDeadlineOffset = -2
	MaxDeadlineOffset = 7
)

// Generator produces synthetic task collections from an injected random source.
// A Generator is not safe for concurrent use.
type Generator struct {
	rng    *rand.Rand
	owners []string
}

// NewGenerator creates a generator drawing from src. An empty owners list
// falls back to DefaultOwners.
func NewGenerator(src rand.Source, owners []string) *Generator {
	if len(owners) == 0 {
		owners = DefaultOwners
	}
	return &Generator{
		rng:    rand.New(src),
		owners: append([]string(nil), owners...),
	}
}

// NewSeededGenerator creates a generator whose output is fully determined by seed.
func NewSeededGenerator(seed uint64, owners []string) *Generator {
	return NewGenerator(rand.NewPCG(seed, seed), owners)
}

// Owners returns a copy of the roster the generator draws from.
func (g *Generator) Owners() []string {
	return append([]string(nil), g.owners...)
}

// Generate returns n tasks with sequential IDs starting at 1. Owner, status
// and sentiment are picked uniformly; the deadline is uniform over the
// deadline window around today.
func (g *Generator) Generate(n int, today Date) []Task {
	if n <= 0 {
		return []Task{}
	}

	out := make([]Task, n)
	span := MaxDeadlineOffset - MinDeadlineOffset + 1
	for i := range out {
		id := i + 1
		out[i] = Task{
			ID:        id,
			Name:      fmt.Sprintf("Task #%d", id),
			Owner:     g.owners[g.rng.IntN(len(g.owners))],
			Status:    Statuses[g.rng.IntN(len(Statuses))],
			Deadline:  today.AddDays(MinDeadlineOffset + g.rng.IntN(span)),
			Sentiment: Sentiments[g.rng.IntN(len(Sentiments))],
		}
	}
	return out
}

// Session is one freshly generated collection. Sessions live for a single
// dashboard render and are never stored.
type Session struct {
	ID          string    `json:"id"`
	Seed        uint64    `json:"seed"`
	Today       Date      `json:"today"`
	GeneratedAt time.Time `json:"generated_at"`
	Tasks       []Task    `json:"tasks"`
}

// NewSession generates n tasks from seed and wraps them in a Session.
func NewSession(seed uint64, owners []string, n int, today Date) *Session {
	g := NewSeededGenerator(seed, owners)
	return &Session{
		ID:          uuid.NewString(),
		Seed:        seed,
		Today:       today,
		GeneratedAt: time.Now(),
		Tasks:       g.Generate(n, today),
	}
}
