package domain

import (
	"fmt"
	"math"
)

// RiskLevel buckets a risk percentage for display.
type RiskLevel string

const (
	RiskNone    RiskLevel = "none"
	RiskLow     RiskLevel = "low"
	RiskMedium  RiskLevel = "medium"
	RiskHigh    RiskLevel = "high"
	RiskUnknown RiskLevel = "unknown"
)

// InsufficientData is the risk text of an area without a usable year.
const InsufficientData = "Insufficient data"

// RiskBands are the lower bounds (inclusive) of the medium and high levels.
type RiskBands struct {
	Medium float64 `json:"medium"`
	High   float64 `json:"high"`
}

// Level classifies pct: exactly 0 is none, >= High is high, >= Medium is medium, otherwise low.
func (b RiskBands) Level(pct float64) RiskLevel {
	switch {
	case pct == 0:
		return RiskNone
	case pct >= b.High:
		return RiskHigh
	case pct >= b.Medium:
		return RiskMedium
	default:
		return RiskLow
	}
}

// FormatRisk renders a risk percentage as a frequency, e.g. 20 -> "1 out of 5 summers".
func FormatRisk(pct float64) (string, error) {
	if math.IsNaN(pct) || pct < 0 || pct > 100 {
		return "", fmt.Errorf("%w: risk percentage %v outside [0, 100]", ErrDomain, pct)
	}
	if pct == 0 {
		return "None", nil
	}
	return fmt.Sprintf("1 out of %.0f summers", 1/(pct/100)), nil
}

// RiskCell is one formatted risk value of the table.
type RiskCell struct {
	Pct   *float64  `json:"pct"`
	Text  string    `json:"text"`
	Level RiskLevel `json:"level"`
}

// RiskRow is one area of the long-term risk table.
type RiskRow struct {
	AreaID           AreaID   `json:"area_id"`
	Area             string   `json:"area"`
	Years            int      `json:"years"`
	Overheating      RiskCell `json:"overheating"`
	NightOverheating RiskCell `json:"night_overheating"`
}

// RiskTable formats summaries for display.
func RiskTable(summaries []RiskSummary, codec AreaCodec, bands RiskBands) ([]RiskRow, error) {
	rows := make([]RiskRow, len(summaries))
	for i, s := range summaries {
		day, err := riskCell(s.OverheatingRisk, bands)
		if err != nil {
			return nil, fmt.Errorf("area %d overheating risk: %w", s.AreaID, err)
		}
		night, err := riskCell(s.NightOverheatingRisk, bands)
		if err != nil {
			return nil, fmt.Errorf("area %d night overheating risk: %w", s.AreaID, err)
		}
		rows[i] = RiskRow{
			AreaID:           s.AreaID,
			Area:             codec.Encode(s.AreaID),
			Years:            s.Years,
			Overheating:      day,
			NightOverheating: night,
		}
	}
	return rows, nil
}

func riskCell(pct *float64, bands RiskBands) (RiskCell, error) {
	if pct == nil {
		return RiskCell{Text: InsufficientData, Level: RiskUnknown}, nil
	}
	text, err := FormatRisk(*pct)
	if err != nil {
		return RiskCell{}, err
	}
	return RiskCell{Pct: pct, Text: text, Level: bands.Level(*pct)}, nil
}
