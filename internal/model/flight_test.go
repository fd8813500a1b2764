package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassMultiplier(t *testing.T) {
	tests := []struct {
		class string
		want  float64
		ok    bool
	}{
		{ClassEconomy, 1.0, true},
		{ClassBusiness, 2.5, true},
		{ClassFirst, 4.0, true},
		{"PREMIUM", 0, false},
		{"economy", 0, false}, // classes are matched verbatim, callers upper-case
		{"", 0, false},
	}
	for _, tt := range tests {
		m, ok := ClassMultiplier(tt.class)
		assert.Equal(t, tt.ok, ok, tt.class)
		assert.Equal(t, tt.want, m, tt.class)
	}
}

func TestTicketPriceCents(t *testing.T) {
	p, ok := TicketPriceCents(ClassEconomy)
	assert.True(t, ok)
	assert.Equal(t, uint32(20000), p)

	p, ok = TicketPriceCents(ClassBusiness)
	assert.True(t, ok)
	assert.Equal(t, uint32(50000), p)

	p, ok = TicketPriceCents(ClassFirst)
	assert.True(t, ok)
	assert.Equal(t, uint32(80000), p)

	_, ok = TicketPriceCents("COACH")
	assert.False(t, ok)
}
