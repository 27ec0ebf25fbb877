package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/edupulse/timetable-api/internal/dto"
	"github.com/edupulse/timetable-api/internal/engine"
	"github.com/edupulse/timetable-api/internal/models"
	appErrors "github.com/edupulse/timetable-api/pkg/errors"
)

const dateLayout = "2006-01-02"

type allocationGenerator interface {
	Generate(ctx context.Context, academicPeriodID string) (*engine.Result, error)
}

type sessionRescheduler interface {
	Reschedule(ctx context.Context, classScheduleID, newScheduleID string, newDate time.Time) (*models.ClassSchedule, error)
}

type classScheduleStore interface {
	List(ctx context.Context, filter models.ClassScheduleFilter) ([]models.ClassSchedule, int, error)
	Delete(ctx context.Context, id string) error
}

// ClassScheduleService fronts the allocation engine and the session CRUD
// surface.
type ClassScheduleService struct {
	generator   allocationGenerator
	rescheduler sessionRescheduler
	store       classScheduleStore
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewClassScheduleService wires the class schedule use cases.
func NewClassScheduleService(
	generator allocationGenerator,
	rescheduler sessionRescheduler,
	store classScheduleStore,
	validate *validator.Validate,
	logger *zap.Logger,
) *ClassScheduleService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ClassScheduleService{
		generator:   generator,
		rescheduler: rescheduler,
		store:       store,
		validator:   validate,
		logger:      logger,
	}
}

// Generate rebuilds all allocations for one academic period and reports
// what was created, including per-pairing hour totals so callers can spot
// under-scheduled pairings.
func (s *ClassScheduleService) Generate(ctx context.Context, academicPeriodID string) (*dto.GenerationSummary, error) {
	if academicPeriodID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "academicPeriodId is required")
	}

	result, err := s.generator.Generate(ctx, academicPeriodID)
	if err != nil {
		return nil, err
	}

	summary := &dto.GenerationSummary{
		AcademicPeriodID: academicPeriodID,
		Created:          len(result.Created),
	}
	for _, outcome := range result.Pairings {
		summary.Pairings = append(summary.Pairings, dto.PairingResult{
			DisciplineTeacherID: outcome.DisciplineTeacherID,
			TeacherID:           outcome.TeacherID,
			DisciplineID:        outcome.DisciplineID,
			RequestedHours:      outcome.RequestedHours,
			ScheduledHours:      outcome.ScheduledHours,
			Sessions:            outcome.Sessions,
		})
	}
	for _, session := range result.Created {
		summary.ClassSchedules = append(summary.ClassSchedules, dto.ClassScheduleRecord{
			ID:                  session.ClassSchedule.ID,
			ScheduleID:          session.ClassSchedule.ScheduleID,
			DisciplineTeacherID: session.ClassSchedule.DisciplineTeacherID,
			Date:                session.ClassSchedule.Date.Format(dateLayout),
			RoomID:              session.RoomID,
		})
	}
	return summary, nil
}

// Reschedule validates and applies a single-session move.
func (s *ClassScheduleService) Reschedule(ctx context.Context, classScheduleID string, req dto.RescheduleRequest) (*models.ClassSchedule, error) {
	if classScheduleID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "class schedule id is required")
	}
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid reschedule payload")
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, "date must use the YYYY-MM-DD format")
	}

	return s.rescheduler.Reschedule(ctx, classScheduleID, req.ScheduleID, date)
}

// List returns allocations matching the query.
func (s *ClassScheduleService) List(ctx context.Context, query dto.ClassScheduleQuery) ([]models.ClassSchedule, *models.Pagination, error) {
	filter := models.ClassScheduleFilter{
		AcademicPeriodID: query.AcademicPeriodID,
		TeacherID:        query.TeacherID,
		Page:             query.Page,
		PageSize:         query.PageSize,
	}
	if query.From != "" {
		from, err := time.Parse(dateLayout, query.From)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "from must use the YYYY-MM-DD format")
		}
		filter.From = &from
	}
	if query.To != "" {
		to, err := time.Parse(dateLayout, query.To)
		if err != nil {
			return nil, nil, appErrors.Clone(appErrors.ErrValidation, "to must use the YYYY-MM-DD format")
		}
		filter.To = &to
	}

	schedules, total, err := s.store.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list class schedules")
	}

	return schedules, paginationFor(filter.Page, filter.PageSize, total), nil
}

// Delete removes one allocation and its room binding.
func (s *ClassScheduleService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return appErrors.Clone(appErrors.ErrValidation, "class schedule id is required")
	}
	if err := s.store.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrClassScheduleNotFound, "")
		}
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete class schedule")
	}
	return nil
}
