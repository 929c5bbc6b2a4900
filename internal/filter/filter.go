// Package filter projects a task collection onto an owner and status selection.
package filter

import (
	"fmt"
	"slices"
	"strings"

	"github.com/marcus/missioncontrol/internal/tasks"
)

// AllOwners is the owner value that disables owner filtering.
const AllOwners = "All"

// Selection is an immutable filter choice. An empty Owner (or AllOwners)
// matches every owner; an empty Statuses set matches every status.
type Selection struct {
	Owner    string         `json:"owner,omitempty"`
	Statuses []tasks.Status `json:"statuses,omitempty"`
}

// AllStatuses returns the default selection: every owner, every status.
func AllStatuses() Selection {
	return Selection{Statuses: slices.Clone(tasks.Statuses)}
}

// ParseSelection builds a Selection from user input. Status names are parsed
// with tasks.ParseStatus; duplicates are dropped.
func ParseSelection(owner string, statuses []string) (Selection, error) {
	sel := Selection{Owner: normalizeOwner(owner)}
	for _, name := range statuses {
		for _, part := range strings.Split(name, ",") {
			if strings.TrimSpace(part) == "" {
				continue
			}
			s, err := tasks.ParseStatus(part)
			if err != nil {
				return Selection{}, fmt.Errorf("status filter: %w", err)
			}
			if !slices.Contains(sel.Statuses, s) {
				sel.Statuses = append(sel.Statuses, s)
			}
		}
	}
	return sel, nil
}

// OwnerFiltered reports whether the selection restricts owners.
func (s Selection) OwnerFiltered() bool {
	return normalizeOwner(s.Owner) != ""
}

// Allows reports whether status passes the status part of the selection.
func (s Selection) Allows(status tasks.Status) bool {
	return len(s.Statuses) == 0 || slices.Contains(s.Statuses, status)
}

// Matches reports whether t passes both parts of the selection.
func (s Selection) Matches(t tasks.Task) bool {
	if owner := normalizeOwner(s.Owner); owner != "" && t.Owner != owner {
		return false
	}
	return s.Allows(t.Status)
}

// WithOwner returns a copy of s filtering on owner.
func (s Selection) WithOwner(owner string) Selection {
	return Selection{Owner: normalizeOwner(owner), Statuses: slices.Clone(s.Statuses)}
}

// Toggle returns a copy of s with status added or removed. Statuses stay in
// canonical order. An empty set counts as every status, so toggling it hides
// status.
func (s Selection) Toggle(status tasks.Status) Selection {
	current := s.Statuses
	if len(current) == 0 {
		current = tasks.Statuses
	}
	next := Selection{Owner: s.Owner}
	removing := slices.Contains(current, status)
	for _, known := range tasks.Statuses {
		has := slices.Contains(current, known)
		if known == status {
			has = !removing
		}
		if has {
			next.Statuses = append(next.Statuses, known)
		}
	}
	return next
}

// String describes the selection for headers and logs.
func (s Selection) String() string {
	owner := AllOwners
	if s.OwnerFiltered() {
		owner = normalizeOwner(s.Owner)
	}
	status := "all statuses"
	if len(s.Statuses) > 0 && len(s.Statuses) < len(tasks.Statuses) {
		names := make([]string, len(s.Statuses))
		for i, st := range s.Statuses {
			names[i] = st.String()
		}
		status = strings.Join(names, ", ")
	}
	return fmt.Sprintf("owner: %s, status: %s", owner, status)
}

// Apply returns the tasks of all matching sel, in collection order. The
// input is not modified.
func Apply(all []tasks.Task, sel Selection) []tasks.Task {
	out := make([]tasks.Task, 0, len(all))
	for _, t := range all {
		if sel.Matches(t) {
			out = append(out, t)
		}
	}
	return out
}

func normalizeOwner(owner string) string {
	owner = strings.TrimSpace(owner)
	if strings.EqualFold(owner, AllOwners) {
		return ""
	}
	return owner
}
