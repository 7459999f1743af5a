package domain

import (
	"fmt"
	"sort"
	"time"
)

// DefaultHorizons are the look-ahead windows, in days, of the short-term table.
var DefaultHorizons = []int{1, 7, 14, 30, 60, 90, 180}

// HorizonEntry is the cumulative overheating hours within the first Days days
// of a series. Hours is nil when the series does not reach that far yet.
type HorizonEntry struct {
	Days  int  `json:"days"`
	Hours *int `json:"hours"`
}

// Label returns the column heading of the entry, e.g. "Next 7 day(s)".
func (e HorizonEntry) Label() string {
	return fmt.Sprintf("Next %d day(s)", e.Days)
}

// HorizonRow holds the horizon entries of one area.
type HorizonRow struct {
	AreaID  AreaID         `json:"area_id"`
	Entries []HorizonEntry `json:"entries"`
}

// HorizonTable accumulates flags from each area's first timestamp and reads
// the running count at the last timestamp strictly before start + h days.
// Horizons past the last timestamp are reported as missing, not zero.
func HorizonTable(flags []FlagSeries, horizons []int) ([]HorizonRow, error) {
	for _, h := range horizons {
		if h <= 0 {
			return nil, fmt.Errorf("%w: horizon %d days must be positive", ErrDomain, h)
		}
	}

	byArea := make(map[AreaID][]FlagPoint)
	total := 0
	for _, f := range flags {
		byArea[f.AreaID] = append(byArea[f.AreaID], f.Points...)
		total += len(f.Points)
	}
	if total == 0 {
		return nil, fmt.Errorf("horizon table: %w", ErrEmptySeries)
	}

	ids := make([]AreaID, 0, len(byArea))
	for id, points := range byArea {
		if len(points) > 0 {
			ids = append(ids, id)
		}
	}
	sortAreaIDs(ids)

	rows := make([]HorizonRow, len(ids))
	for i, id := range ids {
		rows[i] = HorizonRow{AreaID: id, Entries: horizonEntries(byArea[id], horizons)}
	}
	return rows, nil
}

func horizonEntries(points []FlagPoint, horizons []int) []HorizonEntry {
	sorted := make([]FlagPoint, len(points))
	copy(sorted, points)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Time.Before(sorted[j].Time) })

	cumsum := make([]int, len(sorted))
	running := 0
	for i, p := range sorted {
		if p.Flag {
			running++
		}
		cumsum[i] = running
	}

	start := sorted[0].Time
	end := sorted[len(sorted)-1].Time

	entries := make([]HorizonEntry, len(horizons))
	for i, days := range horizons {
		entries[i] = HorizonEntry{Days: days}
		horizon := start.Add(time.Duration(days) * 24 * time.Hour)
		if horizon.After(end) {
			continue
		}
		// First index at or after the horizon; the entry before it is the last one strictly earlier.
		idx := sort.Search(len(sorted), func(j int) bool { return !sorted[j].Time.Before(horizon) })
		hours := cumsum[idx-1]
		entries[i].Hours = &hours
	}
	return entries
}
