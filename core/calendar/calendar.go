package calendar

import "time"

type (
	// Day is one cell of the month grid. Day 0 marks a leading blank cell
	// before the 1st of the month.
	Day struct {
		Day        int      `json:"day"`
		Date       string   `json:"date,omitempty"` // YYYY-MM-DD
		Today      bool     `json:"today,omitempty"`
		TaskTitles []string `json:"task_titles,omitempty"`
	}

	Month struct {
		Year  int    `json:"year"`
		Month int    `json:"month"` // 1-12
		Title string `json:"title"` // e.g. "September 2026"
		Days  []Day  `json:"days"`
	}
)

// DaysOfWeek is the grid header, Sunday first.
var DaysOfWeek = []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}

// FormatISODate formats a time as YYYY-MM-DD.
func FormatISODate(t time.Time) string {
	return t.Format("2006-01-02")
}

// BuildMonth builds the month grid: leading blank cells so the 1st lands on
// its weekday column, then one cell per day. tasksOn may be nil; otherwise it
// supplies the task titles due on a date, shown as day markers.
func BuildMonth(year int, month time.Month, today time.Time, tasksOn func(date string) []string) Month {
	first := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	daysInMonth := first.AddDate(0, 1, -1).Day()
	todayStr := FormatISODate(today)

	m := Month{
		Year:  year,
		Month: int(month),
		Title: first.Format("January 2006"),
		Days:  make([]Day, 0, int(first.Weekday())+daysInMonth),
	}
	for i := 0; i < int(first.Weekday()); i++ {
		m.Days = append(m.Days, Day{})
	}
	for day := 1; day <= daysInMonth; day++ {
		date := FormatISODate(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
		cell := Day{Day: day, Date: date, Today: date == todayStr}
		if tasksOn != nil {
			cell.TaskTitles = tasksOn(date)
		}
		m.Days = append(m.Days, cell)
	}
	return m
}

// PrevMonth returns the year/month immediately before the given one.
func PrevMonth(year int, month time.Month) (int, time.Month) {
	if month == time.January {
		return year - 1, time.December
	}
	return year, month - 1
}

// NextMonth returns the year/month immediately after the given one.
func NextMonth(year int, month time.Month) (int, time.Month) {
	if month == time.December {
		return year + 1, time.January
	}
	return year, month + 1
}
