package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		value    float64
		decimals int
		want     string
	}{
		{2_500_000_000, 2, "2.50B"},
		{1_000_000, 2, "1.00M"},
		{145_300_000, 1, "145.3M"},
		{12_345, 0, "12K"},
		{999.5, 2, "999.50"},
		{0, 2, "0.00"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatNumber(tt.value, tt.decimals))
	}
}

func TestPercentageChange(t *testing.T) {
	assert.Equal(t, 0.0, PercentageChange(0, 10))
	assert.InDelta(t, 50.0, PercentageChange(100, 150), 1e-9)
	assert.InDelta(t, -25.0, PercentageChange(200, 150), 1e-9)
}

func TestParseTimestamp(t *testing.T) {
	want := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)

	for _, in := range []string{
		"2023-01-01T00:00:00Z",
		"2023-01-01T00:00:00+00:00",
		"2023-01-01T00:00:00.000Z",
		"2023-01-01 00:00:00+00:00",
		"2023-01-01T03:00:00+03:00",
		"2023-01-01T00:00+00:00",
		"2023-01-01T00:00Z",
		"2023-01-01 03:00+03:00",
	} {
		got, err := ParseTimestamp(in)
		require.NoError(t, err, in)
		assert.True(t, want.Equal(got), in)
	}

	for _, in := range []string{"", "yesterday", "2023-01-01T00:00:00", "2023-01-01T00:00", "1672531200000"} {
		_, err := ParseTimestamp(in)
		assert.ErrorIs(t, err, ErrBadTimestamp, in)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "1ч 30м", FormatDuration(90*time.Minute))
	assert.Equal(t, "5м", FormatDuration(5*time.Minute))
	assert.Equal(t, "30с", FormatDuration(30*time.Second))
}

func TestFormatPercent(t *testing.T) {
	assert.Equal(t, "+12.50%", FormatPercent(12.5))
	assert.Equal(t, "-3.00%", FormatPercent(-3))
	assert.Equal(t, "0.00%", FormatPercent(0))
}
