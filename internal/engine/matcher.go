package engine

import (
	"context"
	"time"

	"github.com/edupulse/timetable-api/internal/models"
)

type roomCatalog interface {
	ListEligible(ctx context.Context, roomType string, minSeats int) ([]models.Room, error)
}

// RoomMatcher finds a free room for a (type, capacity, date, slot) tuple.
type RoomMatcher struct {
	rooms   roomCatalog
	checker *Checker
}

// NewRoomMatcher wires the matcher to the room catalog and rule checker.
func NewRoomMatcher(rooms roomCatalog, checker *Checker) *RoomMatcher {
	return &RoomMatcher{rooms: rooms, checker: checker}
}

// Find returns the first eligible room free at (date, schedule), or nil
// when none qualifies. Candidates arrive ordered by name then id from the
// catalog; that order is the tie-break and must not be re-sorted here,
// otherwise repeated runs stop being reproducible.
func (m *RoomMatcher) Find(ctx context.Context, requiredType string, minSeats int, date time.Time, scheduleID, excludeBookingID string) (*models.Room, error) {
	candidates, err := m.rooms.ListEligible(ctx, requiredType, minSeats)
	if err != nil {
		return nil, err
	}

	for i := range candidates {
		free, err := m.checker.RoomAvailable(ctx, candidates[i].ID, date, scheduleID, excludeBookingID)
		if err != nil {
			return nil, err
		}
		if free {
			return &candidates[i], nil
		}
	}
	return nil, nil
}
