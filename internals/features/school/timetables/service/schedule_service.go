// Package service holds the scheduling rules for timetable sessions.
package service

import (
	"errors"

	timetablemodel "schoolku_backend/internals/features/school/timetables/model"
)

var (
	ErrDuplicateTimetable    = errors.New("a timetable already exists for this class, week and year")
	ErrUnknownCourse         = errors.New("course not found")
	ErrUnknownTeacher        = errors.New("teacher not found")
	ErrTeacherCourseMismatch = errors.New("teacher does not teach this course")
	ErrScheduleConflict      = errors.New("session overlaps an existing session")
	ErrSessionNotFound       = errors.New("session not found in this timetable")
)

// Overlaps reports whether two sessions collide: same day and
// [start, end) intervals intersecting. Sessions that merely touch at a
// boundary do not overlap.
func Overlaps(a, b *timetablemodel.TimetableSessionModel) bool {
	if a.SessionDay != b.SessionDay {
		return false
	}
	return a.SessionStartTime.Before(b.SessionEndTime) &&
		a.SessionEndTime.After(b.SessionStartTime)
}

// CheckConflict validates a candidate against the already scheduled
// sessions of the same timetable.
func CheckConflict(existing []timetablemodel.TimetableSessionModel, candidate *timetablemodel.TimetableSessionModel) error {
	for i := range existing {
		if Overlaps(&existing[i], candidate) {
			return ErrScheduleConflict
		}
	}
	return nil
}
