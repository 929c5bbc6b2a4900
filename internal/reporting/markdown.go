package reporting

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/marcus/missioncontrol/internal/dashboard"
)

// Markdown renders the view as a markdown document.
func Markdown(v dashboard.View) string {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s - %s\n\n", v.Title, v.Today))
	if v.Caption != "" {
		buf.WriteString(fmt.Sprintf("_%s_\n\n", v.Caption))
	}

	buf.WriteString("## Mission Overview\n")
	for _, c := range v.Cards() {
		buf.WriteString(fmt.Sprintf("- %s: **%s**\n", c.Label, c.Value))
	}
	buf.WriteString(fmt.Sprintf("- Average sentiment: %+.2f\n\n", v.Summary.AverageSentiment))

	buf.WriteString("## Insights\n")
	for _, in := range v.Insights {
		buf.WriteString(fmt.Sprintf("%d. %s\n", in.Index, in.Text))
	}
	buf.WriteString("\n")

	buf.WriteString(fmt.Sprintf("## Tasks (%s)\n", v.Selection))
	if len(v.Rows) == 0 {
		buf.WriteString("No tasks match the current filters.\n\n")
	} else {
		buf.WriteString("| Task | Owner | Status | Deadline | Sentiment |\n")
		buf.WriteString("| --- | --- | --- | --- | --- |\n")
		for _, t := range v.Rows {
			buf.WriteString(fmt.Sprintf("| %s | %s | %s | %s | %s |\n", t.Name, t.Owner, t.Status, t.Deadline, t.Sentiment))
		}
		buf.WriteString("\n")
	}

	buf.WriteString("## Status Breakdown\n")
	buf.WriteString("| Status | Count | |\n")
	buf.WriteString("| --- | ---: | --- |\n")
	maxCount := v.MaxStatusCount()
	for _, c := range v.StatusCounts {
		buf.WriteString(fmt.Sprintf("| %s | %d | %s |\n", c.Status, c.Count, strings.Repeat("#", BarLength(c.Count, maxCount, 20))))
	}
	buf.WriteString("\n")

	buf.WriteString("## Team\n")
	for _, l := range v.OwnerLoads {
		buf.WriteString(fmt.Sprintf("- %s - Overdue Tasks: %d (of %d, %d due soon)\n", l.Owner, l.Overdue, l.Total, l.Upcoming))
	}

	return buf.String()
}
