package dto

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	timetablemodel "schoolku_backend/internals/features/school/timetables/model"
	"schoolku_backend/internals/helpers/dbtime"
)

var validate = validator.New()

// ErrEndNotAfterStart rejects zero-length and inverted session intervals.
var ErrEndNotAfterStart = errors.New("end_time must be after start_time")

// SessionRequest is one session entry; times are "HH:MM". Sunday is not a
// school day.
type SessionRequest struct {
	Day       string `json:"day" validate:"required,oneof=monday tuesday wednesday thursday friday saturday"`
	StartTime string `json:"start_time" validate:"required,datetime=15:04"`
	EndTime   string `json:"end_time" validate:"required,datetime=15:04"`
	CourseID  string `json:"course_id" validate:"required,uuid"`
	TeacherID string `json:"teacher_id" validate:"required,uuid"`
	Room      string `json:"room" validate:"omitempty,max=50"`
}

func (r *SessionRequest) Validate() error {
	return validate.Struct(r)
}

func (r *SessionRequest) ToModel(timetableID uuid.UUID) (*timetablemodel.TimetableSessionModel, error) {
	start, err := dbtime.Parse(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := dbtime.Parse(r.EndTime)
	if err != nil {
		return nil, err
	}
	if !end.After(start) {
		return nil, ErrEndNotAfterStart
	}
	courseID, err := uuid.Parse(r.CourseID)
	if err != nil {
		return nil, err
	}
	teacherID, err := uuid.Parse(r.TeacherID)
	if err != nil {
		return nil, err
	}
	return &timetablemodel.TimetableSessionModel{
		SessionTimetableID: timetableID,
		SessionDay:         r.Day,
		SessionStartTime:   start,
		SessionEndTime:     end,
		SessionCourseID:    courseID,
		SessionTeacherID:   teacherID,
		SessionRoom:        r.Room,
	}, nil
}

type TimetableCreateRequest struct {
	ClassID  string           `json:"class_id" validate:"required,uuid"`
	Week     int              `json:"week" validate:"required,gte=1,lte=53"`
	Year     int              `json:"year" validate:"required,gte=2000"`
	Sessions []SessionRequest `json:"sessions" validate:"omitempty,dive"`
}

func (r *TimetableCreateRequest) Validate() error {
	return validate.Struct(r)
}

// TimetableReplaceRequest is the bulk session replacement body.
type TimetableReplaceRequest struct {
	Sessions []SessionRequest `json:"sessions" validate:"required,dive"`
}

func (r *TimetableReplaceRequest) Validate() error {
	return validate.Struct(r)
}
