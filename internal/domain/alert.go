package domain

import (
	"time"

	"github.com/google/uuid"
)

// AlertKind distinguishes short-term and long-term alerts.
type AlertKind string

const (
	AlertShortTerm AlertKind = "shortterm"
	AlertLongTerm  AlertKind = "longterm"
)

// Alert is the per-area notification published after each recomputation.
// Short-term alerts carry Horizons, long-term alerts carry Risk.
type Alert struct {
	ID          string         `json:"id"`
	Kind        AlertKind      `json:"kind"`
	AreaID      AreaID         `json:"area_id"`
	Area        string         `json:"area"`
	GeneratedAt time.Time      `json:"generated_at"`
	Horizons    []HorizonEntry `json:"horizons,omitempty"`
	Risk        *RiskRow       `json:"risk,omitempty"`
}

// newAlertID is swapped in tests for deterministic ids.
var newAlertID = uuid.NewString

// NewShortTermAlert builds the alert of one short-term table row.
func NewShortTermAlert(row HorizonRow, codec AreaCodec, generatedAt time.Time) Alert {
	return Alert{
		ID:          newAlertID(),
		Kind:        AlertShortTerm,
		AreaID:      row.AreaID,
		Area:        codec.Encode(row.AreaID),
		GeneratedAt: generatedAt,
		Horizons:    row.Entries,
	}
}

// NewLongTermAlert builds the alert of one risk table row.
func NewLongTermAlert(row RiskRow, generatedAt time.Time) Alert {
	return Alert{
		ID:          newAlertID(),
		Kind:        AlertLongTerm,
		AreaID:      row.AreaID,
		Area:        row.Area,
		GeneratedAt: generatedAt,
		Risk:        &row,
	}
}
