package dashboard

import (
	"context"
	"errors"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/insights"
	"github.com/marcus/missioncontrol/internal/metrics"
	"github.com/marcus/missioncontrol/internal/tasks"
)

var today = tasks.Date{Year: 2026, Month: time.October, Day: 18}

func exampleTasks() []tasks.Task {
	return []tasks.Task{
		{ID: 1, Name: "Task #1", Owner: "A", Status: tasks.StatusBlocked, Deadline: today.AddDays(-1), Sentiment: tasks.SentimentNegative},
		{ID: 2, Name: "Task #2", Owner: "B", Status: tasks.StatusOnTrack, Deadline: today.AddDays(5), Sentiment: tasks.SentimentPositive},
		{ID: 3, Name: "Task #3", Owner: "B", Status: tasks.StatusInProgress, Deadline: today.AddDays(1), Sentiment: tasks.SentimentNeutral},
	}
}

func TestBuild(t *testing.T) {
	v := Build(Input{
		Title:     "Mission Control",
		Tasks:     exampleTasks(),
		Selection: filter.Selection{Owner: "B"},
		Today:     today,
		Roster:    []string{"A", "B", "C"},
	})

	if v.Title != "Mission Control" || v.Today != today {
		t.Errorf("header = %q %s", v.Title, v.Today)
	}
	if len(v.Rows) != 2 || v.Rows[0].ID != 2 || v.Rows[1].ID != 3 {
		t.Errorf("Rows = %+v, want tasks 2 and 3", v.Rows)
	}
	// Metrics ignore the selection.
	if len(v.Summary.Urgent) != 1 || v.Summary.Urgent[0].ID != 1 {
		t.Errorf("Urgent = %+v, want task 1", v.Summary.Urgent)
	}
	if len(v.Summary.Upcoming) != 1 || v.Summary.Upcoming[0].ID != 3 {
		t.Errorf("Upcoming = %+v, want task 3", v.Summary.Upcoming)
	}

	wantKinds := []insights.Kind{insights.KindUrgent, insights.KindOverload, insights.KindSentiment}
	if len(v.Insights) != len(wantKinds) {
		t.Fatalf("Insights = %v", v.Insights)
	}
	for i, k := range wantKinds {
		if v.Insights[i].Kind != k {
			t.Errorf("insight %d kind = %s, want %s", i, v.Insights[i].Kind, k)
		}
	}

	if len(v.OwnerLoads) != 3 || v.OwnerLoads[2].Owner != "C" || v.OwnerLoads[2].Total != 0 {
		t.Errorf("OwnerLoads = %+v", v.OwnerLoads)
	}
	if v.MaxStatusCount() != 1 {
		t.Errorf("MaxStatusCount = %d, want 1", v.MaxStatusCount())
	}
}

func TestCards(t *testing.T) {
	v := Build(Input{Tasks: exampleTasks(), Today: today})
	cards := v.Cards()
	want := []Card{
		{Label: "Urgent Issues", Value: "1"},
		{Label: "Upcoming Deadlines (3 days)", Value: "1"},
		{Label: "Team Sentiment", Value: "Neutral"},
	}
	if !slices.Equal(cards, want) {
		t.Errorf("Cards = %+v, want %+v", cards, want)
	}
}

func TestBuildEmpty(t *testing.T) {
	v := Build(Input{Today: today})
	if v.Summary.Label != metrics.LabelNeutral {
		t.Errorf("Label = %s, want Neutral", v.Summary.Label)
	}
	if len(v.Insights) != 1 || v.Insights[0].Kind != insights.KindSentiment {
		t.Errorf("Insights = %v, want one sentiment message", v.Insights)
	}
	if len(v.Rows) != 0 || v.MaxStatusCount() != 0 {
		t.Errorf("unexpected rows or counts: %+v", v)
	}
}

func TestRendererFunc(t *testing.T) {
	var got View
	r := RendererFunc(func(ctx context.Context, v View) error {
		got = v
		return errors.New("sink closed")
	})

	v := Build(Input{Title: "x", Today: today})
	if err := r.Render(context.Background(), v); err == nil || err.Error() != "sink closed" {
		t.Errorf("Render() error = %v", err)
	}
	if got.Title != "x" {
		t.Error("renderer did not receive the view")
	}
}

func fixedNow() time.Time {
	return time.Date(2026, time.October, 18, 23, 30, 0, 0, time.UTC)
}

func TestServiceToday(t *testing.T) {
	s := NewService(Options{Now: fixedNow, Location: time.UTC})
	if s.Today() != today {
		t.Errorf("Today() = %s, want %s", s.Today(), today)
	}

	ahead := time.FixedZone("UTC+2", 2*60*60)
	s = NewService(Options{Now: fixedNow, Location: ahead})
	if s.Today() != today.AddDays(1) {
		t.Errorf("Today() in UTC+2 = %s, want %s", s.Today(), today.AddDays(1))
	}
}

func TestServiceSeededSequence(t *testing.T) {
	opts := Options{Seed: 7, TaskCount: 5, Now: fixedNow, Location: time.UTC}
	a, b := NewService(opts), NewService(opts)

	for i := 0; i < 3; i++ {
		sa, sb := a.Refresh(), b.Refresh()
		if sa.Seed != sb.Seed {
			t.Fatalf("refresh %d: seeds differ %d vs %d", i, sa.Seed, sb.Seed)
		}
		if !slices.Equal(sa.Tasks, sb.Tasks) {
			t.Fatalf("refresh %d: tasks differ", i)
		}
		if len(sa.Tasks) != 5 {
			t.Fatalf("refresh %d: %d tasks, want 5", i, len(sa.Tasks))
		}
	}

	first := NewService(opts).Refresh()
	second := NewService(opts)
	second.Refresh()
	if next := second.Refresh(); next.Seed == first.Seed {
		t.Error("consecutive refreshes should use different seeds")
	}
}

func TestServiceDefaults(t *testing.T) {
	s := NewService(Options{Now: fixedNow})
	if !slices.Equal(s.Owners(), tasks.DefaultOwners) {
		t.Errorf("Owners() = %v", s.Owners())
	}
	if n := len(s.Refresh().Tasks); n != 12 {
		t.Errorf("default task count = %d, want 12", n)
	}
}

func TestServiceView(t *testing.T) {
	s := NewService(Options{Title: "MC", Owners: []string{"X", "Y"}, TaskCount: 10, Now: fixedNow, Location: time.UTC})
	sess := s.SessionFor(99)
	v := s.View(sess, filter.Selection{Owner: "X"})

	if v.SessionID != sess.ID || v.Title != "MC" {
		t.Errorf("view header = %q %q", v.SessionID, v.Title)
	}
	for _, r := range v.Rows {
		if r.Owner != "X" {
			t.Errorf("row owned by %q leaked through the filter", r.Owner)
		}
	}
	if len(v.OwnerLoads) != 2 {
		t.Errorf("OwnerLoads = %+v", v.OwnerLoads)
	}
	if v.Summary.Total != 10 {
		t.Errorf("Summary.Total = %d, want 10", v.Summary.Total)
	}
}

func TestServiceConcurrentRefresh(t *testing.T) {
	s := NewService(Options{Seed: 3, Now: fixedNow})
	var wg sync.WaitGroup
	seeds := make(chan uint64, 50)
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			seeds <- s.Refresh().Seed
		}()
	}
	wg.Wait()
	close(seeds)

	seen := make(map[uint64]bool)
	for seed := range seeds {
		if seen[seed] {
			t.Errorf("seed %d handed out twice", seed)
		}
		seen[seed] = true
	}
}
