package engine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/edupulse/timetable-api/internal/holiday"
	"github.com/edupulse/timetable-api/internal/models"
	appErrors "github.com/edupulse/timetable-api/pkg/errors"
)

type periodReader interface {
	FindByID(ctx context.Context, id string) (*models.AcademicPeriod, error)
}

type pairingSource interface {
	ListActivePairings(ctx context.Context, academicPeriodID string) ([]models.Pairing, error)
}

type availabilitySource interface {
	ListActiveSlots(ctx context.Context, teacherID, dayOfWeek string, date time.Time) ([]models.AvailabilitySlot, error)
}

type allocationStore interface {
	DeleteForPeriod(ctx context.Context, academicPeriodID string) error
	CreateWithRoom(ctx context.Context, schedule *models.ClassSchedule, roomID string) error
}

type holidaySource interface {
	Range(ctx context.Context, from, to time.Time) holiday.Set
}

// Observer receives generation telemetry.
type Observer interface {
	GenerationRun(periodID string)
	AllocationsCreated(n int)
}

// AllocatedSession pairs a created allocation with its room binding.
type AllocatedSession struct {
	ClassSchedule models.ClassSchedule
	RoomID        string
}

// PairingOutcome reports per-pairing totals after a run. ScheduledHours may
// fall short of RequestedHours when no eligible day remained; the engine
// does not treat that as an error.
type PairingOutcome struct {
	DisciplineTeacherID string
	TeacherID           string
	DisciplineID        string
	RequestedHours      float64
	ScheduledHours      float64
	Sessions            int
}

// Result is the outcome of one full-period generation run.
type Result struct {
	Created  []AllocatedSession
	Pairings []PairingOutcome
}

// Generator performs the day-by-day greedy allocation for every active
// discipline/teacher pairing of an academic period. One run is a single
// sequential unit of work: every allocation decision feeds the next
// eligibility check, so pairings and candidate slots are never processed
// concurrently. Runs for the same period are serialized; different periods
// may run at the same time.
type Generator struct {
	periods      periodReader
	pairings     pairingSource
	availability availabilitySource
	matcher      *RoomMatcher
	checker      *Checker
	store        allocationStore
	holidays     holidaySource
	observer     Observer
	logger       *zap.Logger
	locks        *PeriodLocks
}

// NewGenerator wires the allocation engine. locks may be shared with the
// rescheduler so edits cannot interleave with a rebuild of the same period.
func NewGenerator(
	periods periodReader,
	pairings pairingSource,
	availability availabilitySource,
	matcher *RoomMatcher,
	checker *Checker,
	store allocationStore,
	holidays holidaySource,
	observer Observer,
	logger *zap.Logger,
	locks *PeriodLocks,
) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if locks == nil {
		locks = NewPeriodLocks()
	}
	return &Generator{
		periods:      periods,
		pairings:     pairings,
		availability: availability,
		matcher:      matcher,
		checker:      checker,
		store:        store,
		holidays:     holidays,
		observer:     observer,
		logger:       logger,
		locks:        locks,
	}
}

// Generate rebuilds the full allocation set for one academic period.
// Existing allocations for the period's disciplines are discarded first,
// so re-running replaces rather than accumulates.
func (g *Generator) Generate(ctx context.Context, academicPeriodID string) (*Result, error) {
	period, err := g.periods.FindByID(ctx, academicPeriodID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrPeriodNotFound, "")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load academic period")
	}

	release := g.locks.Acquire(academicPeriodID)
	defer release()

	if g.observer != nil {
		g.observer.GenerationRun(academicPeriodID)
	}

	start := normalizeDate(period.StartDate)
	end := normalizeDate(period.EndDate)

	pairings, err := g.pairings.ListActivePairings(ctx, academicPeriodID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load active pairings")
	}
	pairings = collapsePairings(pairings)

	if err := g.store.DeleteForPeriod(ctx, academicPeriodID); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to clear existing allocations")
	}

	// End is exclusive; subtract a day so the range query covers exactly
	// the generated window.
	holidays := g.holidays.Range(ctx, start, end.AddDate(0, 0, -1))

	result := &Result{}
	for _, pairing := range pairings {
		outcome, created, err := g.allocatePairing(ctx, pairing, start, end, holidays)
		if err != nil {
			return nil, err
		}
		result.Pairings = append(result.Pairings, outcome)
		result.Created = append(result.Created, created...)
	}

	if g.observer != nil {
		g.observer.AllocationsCreated(len(result.Created))
	}
	g.logger.Info("generation run complete",
		zap.String("period_id", academicPeriodID),
		zap.Int("pairings", len(pairings)),
		zap.Int("allocations", len(result.Created)),
	)
	return result, nil
}

// collapsePairings reduces the source rows to one per discipline/teacher
// pairing. A discipline activated for several modules in the same period
// must spend a single hour budget, not one per activation; the largest
// cohort wins so the seat requirement covers every activation.
func collapsePairings(pairings []models.Pairing) []models.Pairing {
	seen := make(map[string]int, len(pairings))
	out := pairings[:0]
	for _, pairing := range pairings {
		idx, ok := seen[pairing.DisciplineTeacherID]
		if !ok {
			seen[pairing.DisciplineTeacherID] = len(out)
			out = append(out, pairing)
			continue
		}
		if pairing.TotalStudents > out[idx].TotalStudents {
			out[idx] = pairing
		}
	}
	return out
}

// allocatePairing walks the period's calendar days for one pairing,
// claiming the first eligible (day, slot, room) combinations until the
// discipline's hour budget is spent or the period ends.
func (g *Generator) allocatePairing(
	ctx context.Context,
	pairing models.Pairing,
	start, end time.Time,
	holidays holiday.Set,
) (PairingOutcome, []AllocatedSession, error) {
	outcome := PairingOutcome{
		DisciplineTeacherID: pairing.DisciplineTeacherID,
		TeacherID:           pairing.TeacherID,
		DisciplineID:        pairing.DisciplineID,
		RequestedHours:      pairing.TotalHours,
	}

	remaining := pairing.TotalHours
	var lastScheduled *time.Time
	var created []AllocatedSession

	for current := start; current.Before(end) && remaining > 0; current = current.AddDate(0, 0, 1) {
		if g.checker.IsHoliday(holidays, current) {
			continue
		}

		slots, err := g.availability.ListActiveSlots(ctx, pairing.TeacherID, current.Weekday().String(), current)
		if err != nil {
			return outcome, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher availability")
		}

		for _, slot := range slots {
			if remaining <= 0 {
				break
			}
			if !g.checker.WithinMinimumGap(lastScheduled, current) {
				continue
			}

			booked, err := g.checker.TeacherDoubleBooked(ctx, pairing.TeacherID, current, slot.ScheduleID, "")
			if err != nil {
				return outcome, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check teacher booking")
			}
			if booked {
				continue
			}

			room, err := g.matcher.Find(ctx, pairing.RequiredRoomType, pairing.TotalStudents, current, slot.ScheduleID, "")
			if err != nil {
				return outcome, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to match room")
			}
			if room == nil {
				continue
			}

			hours, err := SlotDuration(slot.StartTime, slot.EndTime)
			if err != nil {
				// Slots are validated at creation; a malformed one is
				// skipped rather than poisoning the whole run.
				g.logger.Warn("skipping slot with malformed time bounds",
					zap.String("schedule_id", slot.ScheduleID), zap.Error(err))
				continue
			}

			record := models.ClassSchedule{
				ScheduleID:          slot.ScheduleID,
				DisciplineTeacherID: pairing.DisciplineTeacherID,
				Date:                current,
			}
			if err := g.store.CreateWithRoom(ctx, &record, room.ID); err != nil {
				return outcome, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to persist allocation")
			}

			day := current
			lastScheduled = &day
			remaining -= hours
			outcome.Sessions++
			created = append(created, AllocatedSession{ClassSchedule: record, RoomID: room.ID})
		}
	}

	outcome.ScheduledHours = outcome.RequestedHours - remaining
	if remaining > 0 {
		g.logger.Info("pairing left under-scheduled",
			zap.String("discipline_teacher_id", pairing.DisciplineTeacherID),
			zap.Float64("remaining_hours", remaining),
		)
	}
	return outcome, created, nil
}
