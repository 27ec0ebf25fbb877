package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/edupulse/timetable-api/internal/holiday"
	"github.com/edupulse/timetable-api/internal/models"
)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

// memoryStore backs the booking checks with the allocations it has
// accepted, so a generation run sees its own writes the same way the real
// repository does after each per-allocation commit.
type memoryStore struct {
	teacherByPairing map[string]string
	allocations      []memoryAllocation
	deletes          int
	seq              int
}

type memoryAllocation struct {
	id         string
	bookingID  string
	scheduleID string
	pairingID  string
	teacherID  string
	roomID     string
	date       time.Time

	// seeded rows model another period's sessions and survive the
	// clear-then-rebuild step.
	seeded bool
}

func newMemoryStore(teacherByPairing map[string]string) *memoryStore {
	return &memoryStore{teacherByPairing: teacherByPairing}
}

func (s *memoryStore) DeleteForPeriod(ctx context.Context, academicPeriodID string) error {
	s.deletes++
	kept := s.allocations[:0]
	for _, a := range s.allocations {
		if a.seeded {
			kept = append(kept, a)
		}
	}
	s.allocations = kept
	return nil
}

func (s *memoryStore) CreateWithRoom(ctx context.Context, schedule *models.ClassSchedule, roomID string) error {
	s.seq++
	schedule.ID = fmt.Sprintf("cs-%d", s.seq)
	s.allocations = append(s.allocations, memoryAllocation{
		id:         schedule.ID,
		bookingID:  fmt.Sprintf("csr-%d", s.seq),
		scheduleID: schedule.ScheduleID,
		pairingID:  schedule.DisciplineTeacherID,
		teacherID:  s.teacherByPairing[schedule.DisciplineTeacherID],
		roomID:     roomID,
		date:       schedule.Date,
	})
	return nil
}

// book seeds a pre-existing allocation, e.g. another pairing's session.
func (s *memoryStore) book(teacherID, scheduleID, roomID string, date time.Time) {
	s.seq++
	s.allocations = append(s.allocations, memoryAllocation{
		id:         fmt.Sprintf("cs-%d", s.seq),
		bookingID:  fmt.Sprintf("csr-%d", s.seq),
		scheduleID: scheduleID,
		teacherID:  teacherID,
		roomID:     roomID,
		date:       date,
		seeded:     true,
	})
}

func (s *memoryStore) TeacherBookingExists(ctx context.Context, teacherID string, date time.Time, scheduleID, excludeID string) (bool, error) {
	for _, a := range s.allocations {
		if a.id == excludeID {
			continue
		}
		if a.teacherID == teacherID && a.scheduleID == scheduleID && a.date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

func (s *memoryStore) RoomBookingExists(ctx context.Context, roomID string, date time.Time, scheduleID, excludeBookingID string) (bool, error) {
	for _, a := range s.allocations {
		if a.bookingID == excludeBookingID {
			continue
		}
		if a.roomID == roomID && a.scheduleID == scheduleID && a.date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

type stubPeriods struct {
	period *models.AcademicPeriod
	err    error
}

func (s *stubPeriods) FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.period, nil
}

type stubPairings struct {
	pairings []models.Pairing
}

func (s *stubPairings) ListActivePairings(ctx context.Context, academicPeriodID string) ([]models.Pairing, error) {
	return s.pairings, nil
}

// stubAvailability maps weekday names to slots, with per-date exceptions.
type stubAvailability struct {
	byWeekday  map[string][]models.AvailabilitySlot
	exceptions map[string]bool
}

func (s *stubAvailability) ListActiveSlots(ctx context.Context, teacherID, dayOfWeek string, date time.Time) ([]models.AvailabilitySlot, error) {
	if s.exceptions[date.Format("2006-01-02")] {
		return nil, nil
	}
	return s.byWeekday[dayOfWeek], nil
}

type stubRooms struct {
	rooms []models.Room
	err   error
}

func (s *stubRooms) ListEligible(ctx context.Context, roomType string, minSeats int) ([]models.Room, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.rooms, nil
}

type stubHolidays struct {
	dates []time.Time
}

func (s *stubHolidays) Range(ctx context.Context, from, to time.Time) holiday.Set {
	set := holiday.Set{}
	for _, d := range s.dates {
		set.Add(d)
	}
	return set
}
