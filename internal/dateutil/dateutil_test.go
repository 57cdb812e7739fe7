package dateutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParseRoundTrip(t *testing.T) {
	day, err := Parse("2025-01-06")
	require.NoError(t, err)
	require.Equal(t, "2025-01-06", day.String())
	require.Equal(t, time.Monday, day.Weekday())

	_, err = Parse("06/01/2025")
	require.Error(t, err)
}

func TestStartOfWeekContainsDay(t *testing.T) {
	days := []string{"2025-01-01", "2025-01-05", "2025-03-31", "2024-02-29", "2025-12-28"}
	for _, value := range days {
		day, err := Parse(value)
		require.NoError(t, err)

		for _, weekStartsOn := range []int{0, 1} {
			start := StartOfWeek(day, weekStartsOn)
			end := EndOfWeek(day, weekStartsOn)

			require.False(t, day.Before(start), "day %s before week start %s", day, start)
			require.False(t, day.After(end), "day %s after week end %s", day, end)
			require.Equal(t, time.Weekday(weekStartsOn), start.Weekday())
			require.Equal(t, start.AddDays(6).String(), end.String())
		}
	}
}

func TestStartOfWeekMonday(t *testing.T) {
	// 2025-01-08 is a Wednesday.
	day, err := Parse("2025-01-08")
	require.NoError(t, err)

	require.Equal(t, "2025-01-06", StartOfWeek(day, 1).String())
	require.Equal(t, "2025-01-05", StartOfWeek(day, 0).String())
	require.Equal(t, "2025-01-12", EndOfWeek(day, 1).String())
}

func TestMonthMatrixShape(t *testing.T) {
	for _, weekStartsOn := range []int{0, 1} {
		weeks := MonthMatrix(2025, time.February, weekStartsOn)
		require.NotEmpty(t, weeks)

		seen := map[string]int{}
		for _, row := range weeks {
			require.Len(t, row, 7)
			for _, day := range row {
				seen[day.String()]++
			}
		}

		// Every day of February appears exactly once in the grid.
		for cur := NewDay(2025, time.February, 1); cur.Time().Month() == time.February; cur = cur.AddDays(1) {
			require.Equal(t, 1, seen[cur.String()], "day %s", cur)
		}
	}
}

func TestMonthMatrixIncludesAdjacentMonths(t *testing.T) {
	// May 2025 starts on a Thursday; a Monday-start grid begins in April.
	weeks := MonthMatrix(2025, time.May, 1)
	require.Equal(t, "2025-04-28", weeks[0][0].String())
	require.Equal(t, "2025-06-01", weeks[len(weeks)-1][6].String())
}

func TestRange(t *testing.T) {
	start, err := Parse("2025-01-06")
	require.NoError(t, err)
	end, err := Parse("2025-01-10")
	require.NoError(t, err)

	days := Range(start, end)
	require.Len(t, days, 5)
	require.Equal(t, "2025-01-06", days[0].String())
	require.Equal(t, "2025-01-10", days[4].String())

	require.Nil(t, Range(end, start))
	require.Len(t, Range(start, start), 1)
}

func TestIsWeekend(t *testing.T) {
	saturday, err := Parse("2025-01-04")
	require.NoError(t, err)
	require.True(t, saturday.IsWeekend())
	require.True(t, saturday.AddDays(1).IsWeekend())
	require.False(t, saturday.AddDays(2).IsWeekend())
}
