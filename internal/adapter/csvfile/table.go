package csvfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	"github.com/hashicorp/go-multierror"
)

// row is one parsed data line: its timestamp, area, and the requested value columns.
type row struct {
	line   int
	time   time.Time
	area   domain.AreaID
	values []float64
}

// readTable parses a dataset with a Datetime index, an optional Area_ID column,
// and the given value columns. Unknown columns are ignored. Empty value cells
// become NaN. Row errors are collected and returned together.
func readTable(r io.Reader, columns []string) ([]row, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header", domain.ErrFormat)
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}

	// The Datetime index may be written as an unnamed first column.
	timeCol, ok := idx[ColDatetime]
	if !ok {
		if strings.TrimSpace(header[0]) != "" {
			return nil, fmt.Errorf("%w: missing column %q", domain.ErrFormat, ColDatetime)
		}
		timeCol = 0
	}
	areaCol, hasArea := idx[ColAreaID]

	valueCols := make([]int, len(columns))
	var missing *multierror.Error
	for i, c := range columns {
		j, ok := idx[c]
		if !ok {
			missing = multierror.Append(missing, fmt.Errorf("%w: missing column %q", domain.ErrFormat, c))
			continue
		}
		valueCols[i] = j
	}
	if err := missing.ErrorOrNil(); err != nil {
		return nil, err
	}

	var (
		rows    []row
		rowErrs *multierror.Error
		line    = 1
	)
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			return nil, fmt.Errorf("read line %d: %w", line, err)
		}
		if isBlank(rec) {
			continue
		}

		rw, err := parseRow(rec, line, timeCol, areaCol, hasArea, valueCols)
		if err != nil {
			rowErrs = multierror.Append(rowErrs, err)
			if len(rowErrs.Errors) >= maxRowErrors {
				break
			}
			continue
		}
		rows = append(rows, rw)
	}
	if err := rowErrs.ErrorOrNil(); err != nil {
		return nil, err
	}
	return rows, nil
}

func parseRow(rec []string, line, timeCol, areaCol int, hasArea bool, valueCols []int) (row, error) {
	rw := row{line: line, values: make([]float64, len(valueCols))}

	t, err := parseTime(field(rec, timeCol))
	if err != nil {
		return row{}, fmt.Errorf("line %d: %w", line, err)
	}
	rw.time = t

	if hasArea {
		area, err := parseArea(field(rec, areaCol))
		if err != nil {
			return row{}, fmt.Errorf("line %d: %w", line, err)
		}
		rw.area = area
	}

	for i, col := range valueCols {
		v, err := parseValue(field(rec, col))
		if err != nil {
			return row{}, fmt.Errorf("line %d: %w", line, err)
		}
		rw.values[i] = v
	}
	return rw, nil
}

func parseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: timestamp %q", domain.ErrFormat, s)
}

func parseArea(s string) (domain.AreaID, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, nil
	}
	// Area ids exported through a float column arrive as "2.0".
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 || f > math.MaxInt32 || f != math.Trunc(f) {
		return 0, fmt.Errorf("%w: area id %q", domain.ErrFormat, s)
	}
	return domain.AreaID(f), nil
}

func parseValue(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return math.NaN(), nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: value %q", domain.ErrFormat, s)
	}
	return v, nil
}

func field(rec []string, i int) string {
	if i < len(rec) {
		return rec[i]
	}
	return ""
}

func isBlank(rec []string) bool {
	for _, f := range rec {
		if strings.TrimSpace(f) != "" {
			return false
		}
	}
	return true
}

// groupByArea splits rows by area, sorted by area id, keeping file order
// within each area.
func groupByArea(rows []row) ([]domain.AreaID, map[domain.AreaID][]row) {
	groups := make(map[domain.AreaID][]row)
	ids := make([]domain.AreaID, 0)
	for _, rw := range rows {
		if _, ok := groups[rw.area]; !ok {
			ids = append(ids, rw.area)
		}
		groups[rw.area] = append(groups[rw.area], rw)
	}
	ids = domain.SortedAreaIDs(ids)
	return ids, groups
}

func formatValue(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
