package progress

import (
	"reflect"
	"testing"
)

func TestActivityScore(t *testing.T) {
	tests := []struct {
		status string
		want   int
	}{
		{"Graded: 90/100", 90},
		{"Graded: 0/100", 0},
		{"Ungraded", 0},
		{"Graded: abc/100", 0},
	}
	for _, tt := range tests {
		a := Activity{Status: tt.status}
		if got := a.Score(); got != tt.want {
			t.Errorf("Score(%q) = %d, want %d", tt.status, got, tt.want)
		}
	}
}

func TestReportFor(t *testing.T) {
	rep, err := ReportFor(PeriodThisWeek)
	if err != nil {
		t.Fatalf("ReportFor() failed: %v", err)
	}
	if len(rep.Activities) != 7 || len(rep.Scores) != 7 {
		t.Fatalf("got %d activities / %d scores, want 7 each", len(rep.Activities), len(rep.Scores))
	}
	want := []int{90, 0, 88, 82, 0, 92, 85}
	if !reflect.DeepEqual(rep.Scores, want) {
		t.Errorf("Scores = %v, want %v", rep.Scores, want)
	}
	if rep.MaxScore != 100 {
		t.Errorf("MaxScore = %d, want 100", rep.MaxScore)
	}

	if _, err := ReportFor("Next Week"); err != ErrUnknownPeriod {
		t.Errorf("ReportFor(Next Week) error = %v, want ErrUnknownPeriod", err)
	}

	for _, period := range Periods {
		if _, err := ReportFor(period); err != nil {
			t.Errorf("ReportFor(%s) failed: %v", period, err)
		}
	}
}

func TestWeeklyReport(t *testing.T) {
	if rep := WeeklyReport(); rep.Period != PeriodThisWeek {
		t.Errorf("Period = %q, want This Week", rep.Period)
	}
}
