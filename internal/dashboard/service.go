package dashboard

import (
	"math/rand/v2"
	"sync"
	"time"

	"github.com/marcus/missioncontrol/internal/config"
	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/logging"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// Options configures a Service.
type Options struct {
	Title     string
	Caption   string
	TaskCount int
	Owners    []string
	// Seed makes the sequence of sessions reproducible; 0 seeds from the clock.
	Seed     uint64
	Location *time.Location
	// Now overrides the clock in tests.
	Now func() time.Time
}

// OptionsFromConfig maps the dashboard section of cfg onto Options.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Title:     cfg.Dashboard.Title,
		Caption:   cfg.Dashboard.Caption,
		TaskCount: cfg.Dashboard.TaskCount,
		Owners:    cfg.Dashboard.Owners,
		Seed:      cfg.Dashboard.Seed,
		Location:  cfg.Location(),
	}
}

// Service generates sessions and builds views for them. It is safe for
// concurrent use; the only shared state is the seed sequence.
type Service struct {
	opts   Options
	mu     sync.Mutex
	seeds  *rand.Rand
	logger *logging.Logger
}

// NewService creates a Service.
func NewService(opts Options) *Service {
	if opts.TaskCount <= 0 {
		opts.TaskCount = 12
	}
	if len(opts.Owners) == 0 {
		opts.Owners = tasks.DefaultOwners
	}
	if opts.Location == nil {
		opts.Location = time.Local
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	base := opts.Seed
	if base == 0 {
		base = uint64(opts.Now().UnixNano())
	}
	return &Service{
		opts:   opts,
		seeds:  rand.New(rand.NewPCG(base, base^0x9e3779b97f4a7c15)),
		logger: logging.Component("dashboard"),
	}
}

// Owners returns the configured roster.
func (s *Service) Owners() []string {
	return append([]string(nil), s.opts.Owners...)
}

// Today returns the current day in the configured location.
func (s *Service) Today() tasks.Date {
	return tasks.DateOf(s.opts.Now().In(s.opts.Location))
}

// NextSeed draws the seed for the next session.
func (s *Service) NextSeed() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	seed := s.seeds.Uint64()
	if seed == 0 {
		seed = 1
	}
	return seed
}

// Refresh generates a new session from the next seed in the sequence.
func (s *Service) Refresh() *tasks.Session {
	return s.SessionFor(s.NextSeed())
}

// SessionFor generates the session for an explicit seed.
func (s *Service) SessionFor(seed uint64) *tasks.Session {
	sess := tasks.NewSession(seed, s.opts.Owners, s.opts.TaskCount, s.Today())
	s.logger.Zerolog().Debug().
		Str("session", sess.ID).
		Uint64("seed", seed).
		Int("tasks", len(sess.Tasks)).
		Msg("generated session")
	return sess
}

// View builds the view of sess under sel.
func (s *Service) View(sess *tasks.Session, sel filter.Selection) View {
	return Build(Input{
		Title:     s.opts.Title,
		Caption:   s.opts.Caption,
		SessionID: sess.ID,
		Tasks:     sess.Tasks,
		Selection: sel,
		Today:     sess.Today,
		Roster:    s.opts.Owners,
	})
}
