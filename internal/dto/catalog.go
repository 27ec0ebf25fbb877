package dto

// CreateAcademicPeriodRequest creates a new period. Dates use YYYY-MM-DD;
// the end date is exclusive and must fall after the start date.
type CreateAcademicPeriodRequest struct {
	Name      string `json:"name" binding:"required" validate:"required"`
	StartDate string `json:"startDate" binding:"required" validate:"required,datetime=2006-01-02"`
	EndDate   string `json:"endDate" binding:"required" validate:"required,datetime=2006-01-02"`
}

// CreateRoomRequest registers a room in the catalog.
type CreateRoomRequest struct {
	Name        string `json:"name" binding:"required" validate:"required"`
	SeatsAmount int    `json:"seatsAmount" binding:"required" validate:"required,gt=0"`
	Type        string `json:"type" binding:"required" validate:"required"`
}

// CreateTimeSlotRequest registers a start/end time pair. Times use HH:MM;
// end must be later than start.
type CreateTimeSlotRequest struct {
	StartTime string `json:"startTime" binding:"required" validate:"required,datetime=15:04"`
	EndTime   string `json:"endTime" binding:"required" validate:"required,datetime=15:04"`
}

// CreateScheduleRequest names a weekly recurring slot.
type CreateScheduleRequest struct {
	DayOfWeek  string `json:"dayOfWeek" binding:"required" validate:"required"`
	TimeSlotID string `json:"timeSlotId" binding:"required" validate:"required"`
}

// CreateAvailabilityRequest marks a teacher's weekly availability.
type CreateAvailabilityRequest struct {
	TeacherID  string `json:"teacherId" binding:"required" validate:"required"`
	ScheduleID string `json:"scheduleId" binding:"required" validate:"required"`
	Status     *bool  `json:"status" binding:"required" validate:"required"`
}

// CreateExceptionRequest removes one date from an availability slot.
type CreateExceptionRequest struct {
	ExceptionDate string `json:"exceptionDate" binding:"required" validate:"required,datetime=2006-01-02"`
}
