package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimestampValid(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"01:30:45", 5445},
		{"00:01:30", 90},
		{"1:30:45", 5445},
		{"30:45", 1845},
		{"5:07", 307},
		{"45", 45},
		{"0", 0},
		{"00:00:00", 0},
		{"59:59", 3599},
		{"23:59:59", 86399},
		{" 12:00 ", 720},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			r := Timestamp(tt.in)
			require.True(t, r.Valid(), r.Message())
			got, _ := r.Value()
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTimestampInvalid(t *testing.T) {
	inputs := []string{
		"25:00:00",
		"99:59:59",
		"24:00:00",
		"00:60:00",
		"00:00:60",
		"60",
		"invalid",
		"1:2:3",
		"",
		"::::",
		"01:30:45:00",
		"-01:30:45",
		"abc:de:fg",
		"1.5",
		"12:",
	}
	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			r := Timestamp(in)
			assert.False(t, r.Valid())
			assert.NotEmpty(t, r.Message())
		})
	}
}

func TestDuration(t *testing.T) {
	valid := []struct{ start, end, max float64 }{
		{0, 30, 60},
		{10, 20, 30},
		{0, 3600, Unbounded},
		{1800, 3600, 7200},
		{0, 60, 60},
	}
	for _, tt := range valid {
		r := Duration(tt.start, tt.end, tt.max)
		require.True(t, r.Valid(), r.Message())
		got, _ := r.Value()
		assert.Equal(t, tt.end-tt.start, got)
	}

	invalid := []struct{ start, end, max float64 }{
		{-1, 30, 60},
		{0, -30, 60},
		{30, 20, 60},
		{30, 30, 60},
		{0, 61, 60},
		{0, 3600, 1800},
	}
	for _, tt := range invalid {
		r := Duration(tt.start, tt.end, tt.max)
		assert.False(t, r.Valid(), "%v", tt)
		assert.NotEmpty(t, r.Message())
	}
}
