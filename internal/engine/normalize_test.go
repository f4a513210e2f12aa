package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bmoura/tempotrack/internal/core/model"
)

func TestNormalize(t *testing.T) {
	saoPaulo, err := time.LoadLocation("America/Sao_Paulo")
	require.NoError(t, err)

	tests := []struct {
		name    string
		raw     string
		want    time.Time
		wantErr bool
	}{
		{
			name: "naive timestamp interpreted in configured zone",
			raw:  "2024-01-10 14:30:00",
			want: time.Date(2024, 1, 10, 14, 30, 0, 0, saoPaulo),
		},
		{
			name: "naive timestamp without seconds",
			raw:  "2024-01-10 14:30",
			want: time.Date(2024, 1, 10, 14, 30, 0, 0, saoPaulo),
		},
		{
			name: "naive T-separated timestamp",
			raw:  "2024-01-10T14:30:00",
			want: time.Date(2024, 1, 10, 14, 30, 0, 0, saoPaulo),
		},
		{
			name: "zoned timestamp converted to configured zone",
			raw:  "2024-01-10T14:30:00Z",
			want: time.Date(2024, 1, 10, 11, 30, 0, 0, saoPaulo),
		},
		{
			name: "zoned timestamp with offset",
			raw:  "2024-01-10T14:30:00-03:00",
			want: time.Date(2024, 1, 10, 14, 30, 0, 0, saoPaulo),
		},
		{
			name:    "garbage",
			raw:     "not-a-timestamp",
			wantErr: true,
		},
		{
			name:    "empty",
			raw:     "",
			wantErr: true,
		},
		{
			name:    "date only",
			raw:     "2024-01-10",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(tt.raw, saoPaulo)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, model.ErrMalformedTimestamp)
				return
			}
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
			assert.Equal(t, saoPaulo.String(), got.Location().String())
		})
	}
}

func TestNormalizeDSTGap(t *testing.T) {
	// 2024-03-10 02:30 does not exist in New York: clocks jump from
	// 02:00 to 03:00. The record is dropped, not silently shifted.
	newYork, err := time.LoadLocation("America/New_York")
	require.NoError(t, err)

	_, err = Normalize("2024-03-10 02:30:00", newYork)
	assert.ErrorIs(t, err, model.ErrMalformedTimestamp)

	// The same wall clock is perfectly valid one day earlier.
	got, err := Normalize("2024-03-09 02:30:00", newYork)
	require.NoError(t, err)
	assert.Equal(t, 2, got.Hour())
	assert.Equal(t, 30, got.Minute())
}
