// Package parquet exports yearly overheating aggregates as Parquet files.
package parquet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/couchcryptid/thermal-comfort-service/internal/domain"
	parquetgo "github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"
)

// YearlyRecord is one (area, year) row of the export. Percentages are
// OPTIONAL columns, null when the year had no eligible hours.
type YearlyRecord struct {
	AreaID                int32    `parquet:"name=area_id,type=INT32"`
	Area                  string   `parquet:"name=area,type=BYTE_ARRAY,convertedtype=UTF8"`
	Year                  int32    `parquet:"name=year,type=INT32"`
	OverheatingHours      int32    `parquet:"name=overheating_hours,type=INT32"`
	EligibleHours         int32    `parquet:"name=eligible_hours,type=INT32"`
	NightOverheatingHours int32    `parquet:"name=night_overheating_hours,type=INT32"`
	NightEligibleHours    int32    `parquet:"name=night_eligible_hours,type=INT32"`
	OverheatingPct        *float64 `parquet:"name=overheating_pct,type=DOUBLE,repetitiontype=OPTIONAL"`
	NightOverheatingPct   *float64 `parquet:"name=night_overheating_pct,type=DOUBLE,repetitiontype=OPTIONAL"`
	GeneratedAt           int64    `parquet:"name=generated_at,type=INT64,convertedtype=TIMESTAMP_MILLIS"`
}

// Records joins aggregates with their percentages. Both slices come from the
// same YearlyHours result and share its order.
func Records(aggs []domain.YearlyAggregate, pcts []domain.YearlyPercentage, codec domain.AreaCodec, generatedAt time.Time) ([]YearlyRecord, error) {
	if len(aggs) != len(pcts) {
		return nil, fmt.Errorf("%w: %d aggregates, %d percentages", domain.ErrShape, len(aggs), len(pcts))
	}
	out := make([]YearlyRecord, len(aggs))
	for i, a := range aggs {
		p := pcts[i]
		if p.AreaID != a.AreaID || p.Year != a.Year {
			return nil, fmt.Errorf("%w: row %d is area %d/%d, year %d/%d", domain.ErrShape, i, a.AreaID, p.AreaID, a.Year, p.Year)
		}
		out[i] = YearlyRecord{
			AreaID:                int32(a.AreaID),
			Area:                  codec.Encode(a.AreaID),
			Year:                  int32(a.Year),
			OverheatingHours:      int32(a.OverheatingHours),
			EligibleHours:         int32(a.EligibleHours),
			NightOverheatingHours: int32(a.NightOverheatingHours),
			NightEligibleHours:    int32(a.NightEligibleHours),
			OverheatingPct:        p.OverheatingPct,
			NightOverheatingPct:   p.NightOverheatingPct,
			GeneratedAt:           generatedAt.UnixMilli(),
		}
	}
	return out, nil
}

// Write encodes records with the given compression.
func Write(w io.Writer, records []YearlyRecord, compression string) (err error) {
	codec, err := CompressionCodec(compression)
	if err != nil {
		return err
	}

	const parallelism = 1
	pw, err := writer.NewParquetWriterFromWriter(w, new(YearlyRecord), parallelism)
	if err != nil {
		return fmt.Errorf("create parquet writer: %w", err)
	}
	pw.CompressionType = codec

	for _, rec := range records {
		if err := pw.Write(rec); err != nil {
			return fmt.Errorf("write parquet record area %d year %d: %w", rec.AreaID, rec.Year, err)
		}
	}

	// WriteStop can panic inside the library on malformed input.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parquet writer panicked: %v", r)
		}
	}()
	if err := pw.WriteStop(); err != nil {
		return fmt.Errorf("finalize parquet file: %w", err)
	}
	return nil
}

// CompressionCodec maps SNAPPY, GZIP or NONE (case-insensitive) to the codec.
func CompressionCodec(name string) (parquetgo.CompressionCodec, error) {
	switch strings.ToUpper(name) {
	case "SNAPPY", "":
		return parquetgo.CompressionCodec_SNAPPY, nil
	case "GZIP":
		return parquetgo.CompressionCodec_GZIP, nil
	case "NONE":
		return parquetgo.CompressionCodec_UNCOMPRESSED, nil
	default:
		return 0, fmt.Errorf("unsupported compression type: %s", name)
	}
}
