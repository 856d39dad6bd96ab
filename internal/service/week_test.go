package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestResolveWeek(t *testing.T) {
	tests := []struct {
		name      string
		reference time.Time
		wantStart time.Time
		wantEnd   time.Time
	}{
		{
			name:      "midweek wednesday",
			reference: date(2024, time.January, 3),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.January, 7),
		},
		{
			name:      "monday is its own week start",
			reference: date(2024, time.January, 1),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.January, 7),
		},
		{
			name:      "sunday belongs to the preceding monday",
			reference: date(2024, time.January, 7),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.January, 7),
		},
		{
			name:      "saturday",
			reference: date(2024, time.January, 6),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.January, 7),
		},
		{
			name:      "week spanning a month boundary",
			reference: date(2024, time.January, 31),
			wantStart: date(2024, time.January, 29),
			wantEnd:   date(2024, time.February, 4),
		},
		{
			name:      "week spanning a year boundary",
			reference: date(2023, time.December, 31),
			wantStart: date(2023, time.December, 25),
			wantEnd:   date(2023, time.December, 31),
		},
		{
			name:      "time of day is ignored",
			reference: time.Date(2024, time.January, 3, 23, 59, 59, 0, time.UTC),
			wantStart: date(2024, time.January, 1),
			wantEnd:   date(2024, time.January, 7),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := ResolveWeek(tt.reference)
			assert.Equal(t, tt.wantStart, start)
			assert.Equal(t, tt.wantEnd, end)
			assert.Equal(t, time.Monday, start.Weekday())
			assert.Equal(t, time.Sunday, end.Weekday())
		})
	}
}

func TestResolveWeekSpansExactlySevenDays(t *testing.T) {
	start, end := ResolveWeek(date(2024, time.March, 14))
	assert.Equal(t, 6*24*time.Hour, end.Sub(start))
}

func TestResolveWeekAdjacentWeeksDoNotOverlap(t *testing.T) {
	_, end := ResolveWeek(date(2024, time.January, 3))
	nextStart, _ := ResolveWeek(end.AddDate(0, 0, 1))
	assert.Equal(t, end.AddDate(0, 0, 1), nextStart)
}

func TestTruncateToDate(t *testing.T) {
	in := time.Date(2024, time.June, 15, 18, 30, 45, 123, time.FixedZone("X", 3*3600))
	got := TruncateToDate(in)
	assert.Equal(t, time.UTC, got.Location())
	assert.Equal(t, 0, got.Hour())
	assert.Equal(t, 0, got.Minute())
	assert.Equal(t, 15, got.Day())
}
