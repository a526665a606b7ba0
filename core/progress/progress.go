package progress

import (
	"regexp"
	"strconv"

	"github.com/trezcool/studysync/core"
)

// Periods offered by the progress page filter, in display order.
const (
	PeriodThisWeek  = "This Week"
	PeriodLastWeek  = "Last Week"
	PeriodLastMonth = "Last Month"
)

var Periods = []string{PeriodThisWeek, PeriodLastWeek, PeriodLastMonth}

type (
	// Activity is one graded (or pending) activity line.
	Activity struct {
		Name   string `json:"name"`
		Status string `json:"status"` // "Graded: NN/100" or "Ungraded"
		Color  string `json:"color"`
	}

	// Report is the chart payload for one period: the activity lines plus
	// the parsed score series (ungraded scores plot as 0).
	Report struct {
		Period     string     `json:"period"`
		Activities []Activity `json:"activities"`
		Scores     []int      `json:"scores"`
		MaxScore   int        `json:"max_score"`
	}
)

var ErrUnknownPeriod = core.NewNotFoundError("unknown progress period")

var gradedRegex = regexp.MustCompile(`^Graded: (\d+)/100$`)

var activities = map[string][]Activity{
	PeriodThisWeek: {
		{Name: "Math Homework", Status: "Graded: 90/100", Color: "green"},
		{Name: "Science Quiz", Status: "Ungraded", Color: "gray"},
		{Name: "English Essay", Status: "Graded: 88/100", Color: "green"},
		{Name: "History Quiz", Status: "Graded: 82/100", Color: "green"},
		{Name: "Biology Lab", Status: "Ungraded", Color: "gray"},
		{Name: "PE Fitness Test", Status: "Graded: 92/100", Color: "green"},
		{Name: "Computer Assignment", Status: "Graded: 85/100", Color: "green"},
	},
	PeriodLastWeek: {
		{Name: "Math Project", Status: "Graded: 87/100", Color: "green"},
		{Name: "Science Lab", Status: "Ungraded", Color: "gray"},
		{Name: "English Reading", Status: "Graded: 80/100", Color: "green"},
		{Name: "History Report", Status: "Graded: 78/100", Color: "green"},
		{Name: "Art Sketch", Status: "Ungraded", Color: "gray"},
		{Name: "Geography Quiz", Status: "Graded: 84/100", Color: "green"},
		{Name: "Music Composition", Status: "Graded: 90/100", Color: "green"},
	},
	PeriodLastMonth: {
		{Name: "Math Exam", Status: "Graded: 75/100", Color: "green"},
		{Name: "Science Fair", Status: "Graded: 93/100", Color: "green"},
		{Name: "English Portfolio", Status: "Ungraded", Color: "gray"},
		{Name: "History Debate", Status: "Graded: 85/100", Color: "green"},
		{Name: "Computer Lab", Status: "Graded: 80/100", Color: "green"},
		{Name: "Art Exhibit", Status: "Ungraded", Color: "gray"},
		{Name: "Geography Map", Status: "Graded: 86/100", Color: "green"},
	},
}

// Score parses an activity status into its numeric score; ungraded is 0.
func (a Activity) Score() int {
	m := gradedRegex.FindStringSubmatch(a.Status)
	if m == nil {
		return 0
	}
	score, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return score
}

// ReportFor returns the report for a period filter value.
func ReportFor(period string) (Report, error) {
	acts, ok := activities[period]
	if !ok {
		return Report{}, ErrUnknownPeriod
	}
	scores := make([]int, len(acts))
	for i, a := range acts {
		scores[i] = a.Score()
	}
	return Report{Period: period, Activities: acts, Scores: scores, MaxScore: 100}, nil
}

// WeeklyReport is the dashboard's score graph series.
func WeeklyReport() Report {
	rep, _ := ReportFor(PeriodThisWeek)
	return rep
}
