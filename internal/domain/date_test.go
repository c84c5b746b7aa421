package domain

import "testing"

func TestValidDate(t *testing.T) {
	valid := []string{"2024-01-01", "2024-02-29", "1999-12-31"}
	for _, d := range valid {
		if !ValidDate(d) {
			t.Errorf("expected %q to be valid", d)
		}
	}
	invalid := []string{"", "2024-1-1", "01/01/2024", "2023-02-29", "2024-13-01", "2024-01-01T00:00:00Z"}
	for _, d := range invalid {
		if ValidDate(d) {
			t.Errorf("expected %q to be invalid", d)
		}
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		from, to string
		want     int
	}{
		{"2024-01-01", "2024-01-01", 0},
		{"2024-01-01", "2024-01-14", 13},
		{"2024-01-14", "2024-01-01", -13},
		{"2024-02-28", "2024-03-01", 2}, // leap year
		{"2023-12-31", "2024-01-01", 1},
	}
	for _, tc := range cases {
		got, err := DaysBetween(tc.from, tc.to)
		if err != nil {
			t.Fatalf("DaysBetween(%s, %s) returned error: %v", tc.from, tc.to, err)
		}
		if got != tc.want {
			t.Errorf("DaysBetween(%s, %s) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
	if _, err := DaysBetween("bad", "2024-01-01"); err == nil {
		t.Fatal("expected error for malformed date")
	}
}

func TestWeekdayOf(t *testing.T) {
	// 2024-01-07 was a Sunday.
	cases := []struct {
		date string
		want int
	}{
		{"2024-01-07", 0},
		{"2024-01-01", 1},
		{"2024-01-06", 6},
	}
	for _, tc := range cases {
		got, err := WeekdayOf(tc.date)
		if err != nil {
			t.Fatalf("WeekdayOf(%s) returned error: %v", tc.date, err)
		}
		if got != tc.want {
			t.Errorf("WeekdayOf(%s) = %d, want %d", tc.date, got, tc.want)
		}
	}
}
