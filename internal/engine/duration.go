package engine

import (
	"fmt"
	"time"
)

const clockLayout = "15:04"

// SlotDuration converts a time slot's HH:MM boundaries into fractional
// hours. Malformed input is a precondition violation (slots are validated
// at creation) and reported as an error rather than guessed at.
func SlotDuration(startTime, endTime string) (float64, error) {
	start, err := time.Parse(clockLayout, startTime)
	if err != nil {
		return 0, fmt.Errorf("parse slot start %q: %w", startTime, err)
	}
	end, err := time.Parse(clockLayout, endTime)
	if err != nil {
		return 0, fmt.Errorf("parse slot end %q: %w", endTime, err)
	}

	hours := float64(end.Hour()-start.Hour()) + float64(end.Minute()-start.Minute())/60
	return hours, nil
}
