package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlotDuration(t *testing.T) {
	cases := []struct {
		name  string
		start string
		end   string
		want  float64
	}{
		{"two hours", "08:00", "10:00", 2},
		{"ninety minutes", "08:00", "09:30", 1.5},
		{"fifty minutes", "10:10", "11:00", 50.0 / 60.0},
		{"evening slot", "19:00", "22:00", 3},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := SlotDuration(tc.start, tc.end)
			require.NoError(t, err)
			assert.InDelta(t, tc.want, got, 1e-9)
		})
	}
}

func TestSlotDurationMalformed(t *testing.T) {
	_, err := SlotDuration("8am", "10:00")
	require.Error(t, err)

	_, err = SlotDuration("08:00", "25:61")
	require.Error(t, err)
}
