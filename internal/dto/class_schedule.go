package dto

// RescheduleRequest moves a single session to a new weekly slot and date.
// Date uses the YYYY-MM-DD wire format.
type RescheduleRequest struct {
	ScheduleID string `json:"scheduleId" binding:"required" validate:"required"`
	Date       string `json:"date" binding:"required" validate:"required,datetime=2006-01-02"`
}

// ClassScheduleQuery narrows the allocation listing.
type ClassScheduleQuery struct {
	AcademicPeriodID string `form:"academicPeriodId"`
	TeacherID        string `form:"teacherId"`
	From             string `form:"from"`
	To               string `form:"to"`
	Page             int    `form:"page"`
	PageSize         int    `form:"pageSize"`
}

// GenerationSummary reports what a generation run produced, so callers can
// detect under-scheduling without the engine treating it as an error.
type GenerationSummary struct {
	AcademicPeriodID string                `json:"academic_period_id"`
	Created          int                   `json:"created"`
	Pairings         []PairingResult       `json:"pairings"`
	ClassSchedules   []ClassScheduleRecord `json:"class_schedules"`
}

// PairingResult carries the per-pairing hour totals after a run.
type PairingResult struct {
	DisciplineTeacherID string  `json:"discipline_teacher_id"`
	TeacherID           string  `json:"teacher_id"`
	DisciplineID        string  `json:"discipline_id"`
	RequestedHours      float64 `json:"requested_hours"`
	ScheduledHours      float64 `json:"scheduled_hours"`
	Sessions            int     `json:"sessions"`
}

// ClassScheduleRecord is the wire form of one created allocation together
// with its room binding.
type ClassScheduleRecord struct {
	ID                  string `json:"id"`
	ScheduleID          string `json:"schedule_id"`
	DisciplineTeacherID string `json:"discipline_teacher_id"`
	Date                string `json:"date"`
	RoomID              string `json:"room_id"`
}
