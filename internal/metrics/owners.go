package metrics

import "github.com/marcus/missioncontrol/internal/tasks"

// OwnerLoad summarizes one team member's share of the collection.
type OwnerLoad struct {
	Owner    string `json:"owner"`
	Total    int    `json:"total"`
	Overdue  int    `json:"overdue"`
	Upcoming int    `json:"upcoming"`
	Urgent   int    `json:"urgent"`
}

// OwnerBreakdown returns one OwnerLoad per roster member, in roster order,
// including members with no tasks. Owners found in all but missing from the
// roster are appended in the order they are first seen.
func OwnerBreakdown(all []tasks.Task, today tasks.Date, roster []string) []OwnerLoad {
	index := make(map[string]int, len(roster))
	loads := make([]OwnerLoad, 0, len(roster))
	for _, owner := range roster {
		if _, dup := index[owner]; dup {
			continue
		}
		index[owner] = len(loads)
		loads = append(loads, OwnerLoad{Owner: owner})
	}

	for _, t := range all {
		i, ok := index[t.Owner]
		if !ok {
			i = len(loads)
			index[t.Owner] = i
			loads = append(loads, OwnerLoad{Owner: t.Owner})
		}
		l := &loads[i]
		l.Total++
		if t.Overdue(today) {
			l.Overdue++
		}
		if IsUpcoming(t, today) {
			l.Upcoming++
		}
		if IsUrgent(t, today) {
			l.Urgent++
		}
	}
	return loads
}
