package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flagSeries(id AreaID, start time.Time, n int, flag func(i int) bool) FlagSeries {
	points := make([]FlagPoint, n)
	for i := range points {
		points[i] = FlagPoint{Time: start.Add(time.Duration(i) * time.Hour), Flag: flag(i)}
	}
	return FlagSeries{AreaID: id, Points: points}
}

func entryHours(t *testing.T, row HorizonRow, days int) *int {
	t.Helper()
	for _, e := range row.Entries {
		if e.Days == days {
			return e.Hours
		}
	}
	t.Fatalf("no entry for %d days", days)
	return nil
}

func TestHorizonTable_TwoDaysAllOverheating(t *testing.T) {
	flags := []FlagSeries{flagSeries(1, at(2024, time.June, 1, 0), 48, func(int) bool { return true })}

	rows, err := HorizonTable(flags, DefaultHorizons)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	row := rows[0]
	assert.Equal(t, AreaID(1), row.AreaID)
	require.Len(t, row.Entries, len(DefaultHorizons))

	one := entryHours(t, row, 1)
	require.NotNil(t, one)
	assert.Equal(t, 24, *one)

	for _, days := range []int{7, 14, 30, 60, 90, 180} {
		assert.Nil(t, entryHours(t, row, days), "horizon %d days should be missing", days)
	}
}

func TestHorizonTable_CountsStrictlyBeforeHorizon(t *testing.T) {
	// 8 days of alternating flags starting with an overheating hour.
	flags := []FlagSeries{flagSeries(2, at(2024, time.June, 1, 0), 8*24, func(i int) bool { return i%2 == 0 })}

	rows, err := HorizonTable(flags, []int{1, 7})
	require.NoError(t, err)

	assert.Equal(t, 12, *entryHours(t, rows[0], 1))
	assert.Equal(t, 84, *entryHours(t, rows[0], 7))
}

func TestHorizonTable_HorizonOnLastTimestamp(t *testing.T) {
	// Last sample sits exactly at start + 1 day: the horizon is reachable but
	// the sample itself is excluded.
	flags := []FlagSeries{flagSeries(3, at(2024, time.June, 1, 0), 25, func(int) bool { return true })}

	rows, err := HorizonTable(flags, []int{1})
	require.NoError(t, err)

	hours := entryHours(t, rows[0], 1)
	require.NotNil(t, hours)
	assert.Equal(t, 24, *hours)
}

func TestHorizonTable_ZeroIsNotMissing(t *testing.T) {
	flags := []FlagSeries{flagSeries(4, at(2024, time.June, 1, 0), 48, func(int) bool { return false })}

	rows, err := HorizonTable(flags, []int{1, 7})
	require.NoError(t, err)

	one := entryHours(t, rows[0], 1)
	require.NotNil(t, one)
	assert.Equal(t, 0, *one)
	assert.Nil(t, entryHours(t, rows[0], 7))
}

func TestHorizonTable_SortsPointsAndAreas(t *testing.T) {
	a := flagSeries(9, at(2024, time.June, 1, 0), 30, func(i int) bool { return i < 3 })
	// Reverse the points of area 9; the table must not depend on input order.
	for i, j := 0, len(a.Points)-1; i < j; i, j = i+1, j-1 {
		a.Points[i], a.Points[j] = a.Points[j], a.Points[i]
	}
	b := flagSeries(1, at(2024, time.June, 1, 0), 30, func(int) bool { return false })

	rows, err := HorizonTable([]FlagSeries{a, b}, []int{1})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, AreaID(1), rows[0].AreaID)
	assert.Equal(t, AreaID(9), rows[1].AreaID)
	assert.Equal(t, 3, *entryHours(t, rows[1], 1))
}

func TestHorizonTable_Errors(t *testing.T) {
	_, err := HorizonTable(nil, DefaultHorizons)
	assert.ErrorIs(t, err, ErrEmptySeries)

	_, err = HorizonTable([]FlagSeries{{AreaID: 1}}, DefaultHorizons)
	assert.ErrorIs(t, err, ErrEmptySeries)

	flags := []FlagSeries{flagSeries(1, at(2024, time.June, 1, 0), 2, func(int) bool { return true })}
	_, err = HorizonTable(flags, []int{0})
	assert.ErrorIs(t, err, ErrDomain)
}

func TestHorizonEntry_Label(t *testing.T) {
	assert.Equal(t, "Next 1 day(s)", HorizonEntry{Days: 1}.Label())
	assert.Equal(t, "Next 180 day(s)", HorizonEntry{Days: 180}.Label())
}
