package services

import (
	"testing"
	"time"
)

func TestNormalizeDayUsesUTCCalendarDay(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*3600)
	value := time.Date(2024, time.January, 11, 3, 0, 0, 0, tokyo)
	got := NormalizeDay(value)
	want := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) || got.Location() != time.UTC {
		t.Fatalf("NormalizeDay(%s) = %s, want %s", value, got, want)
	}

	start, end := DayRange(value)
	if !start.Equal(want) || !end.Equal(want.AddDate(0, 0, 1)) {
		t.Fatalf("DayRange(%s) = [%s, %s)", value, start, end)
	}
	if FormatDay(value) != "2024-01-10" {
		t.Fatalf("FormatDay(%s) = %q", value, FormatDay(value))
	}
}

func TestParseDayOrToday(t *testing.T) {
	t.Parallel()

	now := time.Date(2024, time.March, 5, 17, 45, 0, 0, time.UTC)
	today := time.Date(2024, time.March, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		raw  string
		want time.Time
	}{
		{raw: "2024-01-10", want: time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)},
		{raw: " 2024-02-29 ", want: time.Date(2024, time.February, 29, 0, 0, 0, 0, time.UTC)},
		{raw: "", want: today},
		{raw: "2023-02-29", want: today},
		{raw: "yesterday", want: today},
	}
	for _, test := range tests {
		if got := ParseDayOrToday(test.raw, now); !got.Equal(test.want) {
			t.Fatalf("ParseDayOrToday(%q) = %s, want %s", test.raw, got, test.want)
		}
	}
}
