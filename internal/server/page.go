package server

import (
	"html/template"
	"io"
	"strings"

	"github.com/marcus/missioncontrol/internal/dashboard"
	"github.com/marcus/missioncontrol/internal/filter"
	"github.com/marcus/missioncontrol/internal/reporting"
	"github.com/marcus/missioncontrol/internal/tasks"
)

// statusColors match the terminal palette.
var statusColors = map[tasks.Status]string{
	tasks.StatusBlocked:    "#eb1818",
	tasks.StatusAtRisk:     "#ffcf6d",
	tasks.StatusInProgress: "#6db9ff",
	tasks.StatusOnTrack:    "#16c44c",
}

type ownerOption struct {
	Name     string
	Selected bool
}

type statusOption struct {
	Name    string
	Checked bool
}

type bar struct {
	Status  string
	Count   int
	Percent int
	Color   string
}

type pageData struct {
	View     dashboard.View
	Cards    []dashboard.Card
	Owners   []ownerOption
	Statuses []statusOption
	Bars     []bar
	Dark     bool
}

func newPageData(v dashboard.View, roster []string, theme string) pageData {
	d := pageData{
		View:  v,
		Cards: v.Cards(),
		Dark:  strings.EqualFold(strings.TrimSpace(theme), "dark"),
	}

	d.Owners = append(d.Owners, ownerOption{Name: filter.AllOwners, Selected: !v.Selection.OwnerFiltered()})
	for _, o := range roster {
		d.Owners = append(d.Owners, ownerOption{Name: o, Selected: v.Selection.Owner == o})
	}
	for _, st := range tasks.Statuses {
		d.Statuses = append(d.Statuses, statusOption{
			Name:    st.String(),
			Checked: len(v.Selection.Statuses) > 0 && v.Selection.Allows(st),
		})
	}

	maxCount := v.MaxStatusCount()
	for _, c := range v.StatusCounts {
		d.Bars = append(d.Bars, bar{
			Status:  c.Status.String(),
			Count:   c.Count,
			Percent: reporting.BarLength(c.Count, maxCount, 100),
			Color:   statusColor(c.Status),
		})
	}
	return d
}

func statusColor(s tasks.Status) string {
	if c, ok := statusColors[s]; ok {
		return c
	}
	return "#999999"
}

var pageTemplate = template.Must(template.New("page").Funcs(template.FuncMap{
	"statusColor": statusColor,
	"overdue": func(t tasks.Task, today tasks.Date) bool {
		return t.Overdue(today)
	},
}).Parse(pageHTML))

func renderPage(w io.Writer, d pageData) error {
	return pageTemplate.Execute(w, d)
}

const pageHTML = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>{{.View.Title}}</title>
<style>
body { font-family: system-ui, sans-serif; margin: 2rem; {{if .Dark}}background: #0e1117; color: #e6edf3;{{else}}background: #f5f8fc; color: #1f2328;{{end}} }
h1 { color: {{if .Dark}}#6db9ff{{else}}#1a3e72{{end}}; margin-bottom: 0; }
.caption { color: #8b949e; font-style: italic; margin-top: .25rem; }
.cards { display: flex; gap: 1rem; margin: 1.5rem 0; }
.card { flex: 1; padding: 1rem; border-radius: 8px; {{if .Dark}}background: #1f2937;{{else}}background: #ffffff;{{end}} box-shadow: 0 1px 3px rgba(0,0,0,.1); }
.card .label { color: #8b949e; font-size: .9rem; }
.card .value { font-size: 1.8rem; font-weight: bold; }
.insight { padding: .6rem 1rem; margin: .4rem 0; border-left: 4px solid #6db9ff; {{if .Dark}}background: #1f2937;{{else}}background: #e6edf6;{{end}} }
table { border-collapse: collapse; width: 100%; }
th, td { text-align: left; padding: .4rem .6rem; border-bottom: 1px solid {{if .Dark}}#30363d{{else}}#c9d4e2{{end}}; }
.status { font-weight: bold; }
.overdue { color: #eb1818; font-size: .8rem; }
.bar-row { display: flex; align-items: center; gap: .5rem; margin: .3rem 0; }
.bar-label { width: 7rem; }
.bar { height: 1.2rem; border-radius: 3px; }
form { margin: 1rem 0; }
</style>
</head>
<body>
<h1>{{.View.Title}}</h1>
{{with .View.Caption}}<p class="caption">{{.}}</p>{{end}}
<p class="caption">Today {{.View.Today}}{{with .View.SessionID}} · session {{.}}{{end}}</p>

<h2>Mission Overview</h2>
<div class="cards">
{{range .Cards}}<div class="card"><div class="label">{{.Label}}</div><div class="value">{{.Value}}</div></div>
{{end}}</div>

<h2>Insights for You</h2>
{{range .View.Insights}}<div class="insight"><strong>Insight {{.Index}}:</strong> {{.Text}}</div>
{{end}}

<h2>Tasks Overview</h2>
<form method="get" action="/">
<label>Owner
<select name="owner">
{{range .Owners}}<option value="{{.Name}}"{{if .Selected}} selected{{end}}>{{.Name}}</option>
{{end}}</select>
</label>
{{range .Statuses}}<label><input type="checkbox" name="status" value="{{.Name}}"{{if .Checked}} checked{{end}}> {{.Name}}</label>
{{end}}<button type="submit">Apply</button>
</form>
{{if .View.Rows}}<table>
<thead><tr><th>Task</th><th>Owner</th><th>Status</th><th>Deadline</th><th>Sentiment</th></tr></thead>
<tbody>
{{$today := .View.Today}}{{range .View.Rows}}<tr><td>{{.Name}}</td><td>{{.Owner}}</td><td class="status" style="color: {{statusColor .Status}}">{{.Status}}</td><td>{{.Deadline}}{{if overdue . $today}} <span class="overdue">overdue</span>{{end}}</td><td>{{.Sentiment}}</td></tr>
{{end}}</tbody>
</table>{{else}}<p>No tasks match the current filters.</p>{{end}}

<h2>Status Breakdown</h2>
{{range .Bars}}<div class="bar-row"><span class="bar-label">{{.Status}}</span><div class="bar" style="width: {{.Percent}}%; background: {{.Color}}"></div><span>{{.Count}}</span></div>
{{end}}

<h2>Team</h2>
<ul>
{{range .View.OwnerLoads}}<li>{{.Owner}} - Overdue Tasks: {{.Overdue}} ({{.Total}} total, {{.Upcoming}} due soon)</li>
{{end}}</ul>
</body>
</html>
`
