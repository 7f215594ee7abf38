package contract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339 with zone", "2026-09-15T10:30:00Z", time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)},
		{"rfc3339 with offset", "2026-09-15T10:30:00+00:00", time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)},
		{"iso without zone", "2026-09-15T10:30:00", time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)},
		{"date only", "2026-09-15", time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC)},
		{"space separated", "2026-09-15 10:30:00", time.Date(2026, 9, 15, 10, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseTimestamp(tt.input)
			require.NoError(t, err)
			assert.True(t, got.Equal(tt.want), "got %v, want %v", got, tt.want)
		})
	}

	_, err := ParseTimestamp("15/09/2026")
	assert.Error(t, err)
}

func TestDaysRemaining(t *testing.T) {
	now := time.Date(2026, 9, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		end  string
		want int
	}{
		{"exactly three days ahead iso", "2026-09-18T12:00:00Z", 3},
		{"exactly three days ahead fixed", "2026-09-18 12:00:00", 3},
		{"just under one day", "2026-09-16T11:00:00Z", 0},
		{"one day overdue", "2026-09-14T12:00:00Z", -1},
		{"an hour overdue floors negative", "2026-09-15 11:00:00", -1},
		{"forty days out", "2026-10-25 12:00:00", 40},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := DaysRemaining(tt.end, now)
			require.True(t, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDaysRemainingUnparseable(t *testing.T) {
	_, ok := DaysRemaining("not a date", time.Now())
	assert.False(t, ok)
}

func TestFormatDisplay(t *testing.T) {
	got, err := FormatDisplay("2026-09-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "15/09/2026 10:30", got)

	got, err = FormatDisplay("2026-01-02 07:05:00")
	require.NoError(t, err)
	assert.Equal(t, "02/01/2026 07:05", got)

	_, err = FormatDisplay("garbage")
	assert.Error(t, err)
}
