package domain

import (
	"fmt"
	"strconv"
	"strings"
)

// AreaID identifies a building, dwelling or zone within a dataset.
type AreaID int

// DefaultAreaType is the display prefix used when none is configured.
const DefaultAreaType = "Dwelling"

// AreaCodec maps area identifiers to display labels and back.
type AreaCodec struct {
	Label string
}

// NewAreaCodec returns a codec for the given area type label, e.g. "Dwelling".
func NewAreaCodec(label string) AreaCodec {
	if label == "" {
		label = DefaultAreaType
	}
	return AreaCodec{Label: label}
}

// Encode returns the display label of an area, e.g. "Dwelling 3".
func (c AreaCodec) Encode(id AreaID) string {
	return c.Label + " " + strconv.Itoa(int(id))
}

// EncodeAll returns the display labels of ids in the given order.
func (c AreaCodec) EncodeAll(ids []AreaID) []string {
	labels := make([]string, len(ids))
	for i, id := range ids {
		labels[i] = c.Encode(id)
	}
	return labels
}

// Decode parses a display label back into an AreaID.
// Whitespace around the number is tolerated ("Dwelling  3" decodes to 3).
func (c AreaCodec) Decode(label string) (AreaID, error) {
	prefix := c.Label + " "
	rest, ok := strings.CutPrefix(label, prefix)
	if !ok {
		return 0, fmt.Errorf("%w: %q does not start with %q", ErrFormat, label, prefix)
	}

	n, err := strconv.Atoi(strings.TrimSpace(rest))
	if err != nil {
		return 0, fmt.Errorf("%w: %q: %v", ErrFormat, label, err)
	}
	if n < 0 {
		return 0, fmt.Errorf("%w: %q: negative area id", ErrFormat, label)
	}
	return AreaID(n), nil
}
