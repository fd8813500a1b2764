package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSeat(t *testing.T) {
	tests := []struct {
		index int
		want  string
	}{
		{0, "01A"},
		{1, "01B"},
		{5, "01F"},
		{6, "02A"},
		{14, "03C"},
		{59, "10F"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatSeat(tt.index))
	}
}

func TestAllocateSeats_EmptyFlight(t *testing.T) {
	seats := AllocateSeats(map[string]struct{}{}, 6)
	assert.Equal(t, []string{"01A", "01B", "01C", "01D", "01E", "01F"}, seats)
}

func TestAllocateSeats_SkipsTakenSeats(t *testing.T) {
	taken := map[string]struct{}{
		"01A": {},
		"01C": {},
		"01D": {},
	}
	seats := AllocateSeats(taken, 4)
	assert.Equal(t, []string{"01B", "01E", "01F", "02A"}, seats)
}

func TestAllocateSeats_NeverCollides(t *testing.T) {
	taken := map[string]struct{}{}
	for i := 0; i < 30; i++ {
		taken[FormatSeat(i)] = struct{}{}
	}
	seats := AllocateSeats(taken, 12)
	assert.Len(t, seats, 12)
	for _, s := range seats {
		_, used := taken[s]
		assert.Falsef(t, used, "allocated seat %s is already taken", s)
	}
	assert.Equal(t, "06A", seats[0]) // first free seat after 30 taken
}

func TestAllocateSeats_ZeroCount(t *testing.T) {
	assert.Empty(t, AllocateSeats(map[string]struct{}{"01A": {}}, 0))
}
