package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAreaCodec_Encode(t *testing.T) {
	codec := NewAreaCodec("Dwelling")
	assert.Equal(t, "Dwelling 0", codec.Encode(0))
	assert.Equal(t, "Dwelling 42", codec.Encode(42))
	assert.Equal(t, []string{"Dwelling 1", "Dwelling 2"}, codec.EncodeAll([]AreaID{1, 2}))
}

func TestAreaCodec_DefaultLabel(t *testing.T) {
	codec := NewAreaCodec("")
	assert.Equal(t, "Dwelling 7", codec.Encode(7))
}

func TestAreaCodec_RoundTrip(t *testing.T) {
	for _, label := range []string{"Dwelling", "Zone", "Flat block"} {
		codec := NewAreaCodec(label)
		for _, id := range []AreaID{0, 1, 9, 10, 123, 99999, 1 << 30} {
			got, err := codec.Decode(codec.Encode(id))
			require.NoError(t, err)
			assert.Equal(t, id, got, "label %q id %d", label, id)
		}
	}
}

func TestAreaCodec_Decode(t *testing.T) {
	codec := NewAreaCodec("Dwelling")

	tests := []struct {
		name    string
		label   string
		want    AreaID
		wantErr bool
	}{
		{"plain", "Dwelling 3", 3, false},
		{"double space", "Dwelling  3", 3, false},
		{"wrong prefix", "House 3", 0, true},
		{"missing separator", "Dwelling3", 0, true},
		{"no number", "Dwelling ", 0, true},
		{"not a number", "Dwelling three", 0, true},
		{"negative", "Dwelling -1", 0, true},
		{"empty", "", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := codec.Decode(tt.label)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
