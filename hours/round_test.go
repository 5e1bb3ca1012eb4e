package hours_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/warp/payroll-engine/hours"
)

func TestRound_EightHourSnap(t *testing.T) {
	// The snap window is 8:00-8:20 inclusive on both ends.
	assert.Equal(t, 8.0, hours.Round(8.0), "8:00 exactly")
	assert.Equal(t, 8.0, hours.Round(8.1), "8:06")
	assert.Equal(t, 8.0, hours.Round(8.33), "8:20, boundary inclusive")
	assert.Equal(t, 8.5, hours.Round(8.35), "8:21 rounds normally to 8:30")
}

func TestRound_HalfHourMidpoint(t *testing.T) {
	cases := []struct {
		name string
		raw  float64
		want float64
	}{
		{"zero stays zero", 0, 0},
		{"7:54 rounds up to 8:00", 7.9, 8.0},
		{"7:44 rounds down to 7:30", 7.73, 7.5},
		{"7:45 is the midpoint, rounds up", 7.75, 8.0},
		{"10:14 rounds down to 10:00", 10.23, 10.0},
		{"10:15 rounds up to 10:30", 10.25, 10.5},
		{"short stint rounds to half hour", 0.4, 0.5},
		{"tiny stint rounds to zero", 0.2, 0.0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, hours.Round(tc.raw))
		})
	}
}

func TestRound_NegativePassesThrough(t *testing.T) {
	// Not a validated case; the rounder leaves it alone.
	assert.Equal(t, -1.3, hours.Round(-1.3))
}

func TestRound_Idempotent(t *testing.T) {
	for _, raw := range []float64{0, 0.4, 7.9, 8.0, 8.33, 8.35, 9.1, 10.25, 16.4} {
		once := hours.Round(raw)
		assert.Equal(t, once, hours.Round(once), "raw=%v", raw)
	}
}

func TestDrift(t *testing.T) {
	assert.True(t, hours.Drift(8.72, 8.5))
	assert.False(t, hours.Drift(8.0, 8.0))
	assert.False(t, hours.Drift(8.001, 8.0), "under a hundredth is noise")
}

func TestFormatHHMM(t *testing.T) {
	assert.Equal(t, "10:15", hours.FormatHHMM(10.25))
	assert.Equal(t, "8:00", hours.FormatHHMM(8.0))
	assert.Equal(t, "0:30", hours.FormatHHMM(0.5))
	assert.Equal(t, "10:03", hours.FormatHHMM(10.05))
}

func TestParse(t *testing.T) {
	cases := []struct {
		in   string
		want float64
		ok   bool
	}{
		{"8.25", 8.25, true},
		{"8:15", 8.25, true},
		{"8:15:00", 8.25, true},
		{" 10:30 ", 10.5, true},
		{"0:45", 0.75, true},
		{"", 0, false},
		{"sick", 0, false},
		{"8:5", 0, false}, // minutes must be two digits
	}
	for _, tc := range cases {
		got, ok := hours.Parse(tc.in)
		assert.Equal(t, tc.ok, ok, "input %q", tc.in)
		if tc.ok {
			assert.InDelta(t, tc.want, got, 1e-9, "input %q", tc.in)
		}
	}
}
