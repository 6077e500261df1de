package model

import (
	"time"

	"github.com/google/uuid"

	"schoolku_backend/internals/helpers/dbtime"
)

// TimetableModel maps the timetables table. A class has at most one
// timetable per (week, year).
type TimetableModel struct {
	TimetableID        uuid.UUID `gorm:"column:timetable_id;type:uuid;default:gen_random_uuid();primaryKey" json:"timetable_id"`
	TimetableClassID   uuid.UUID `gorm:"column:timetable_class_id;type:uuid;not null;uniqueIndex:uq_timetable_class_week_year" json:"timetable_class_id"`
	TimetableWeek      int       `gorm:"column:timetable_week;not null;uniqueIndex:uq_timetable_class_week_year" json:"timetable_week"`
	TimetableYear      int       `gorm:"column:timetable_year;not null;uniqueIndex:uq_timetable_class_week_year" json:"timetable_year"`
	TimetableCreatedAt time.Time `gorm:"column:timetable_created_at;autoCreateTime" json:"timetable_created_at"`
	TimetableUpdatedAt time.Time `gorm:"column:timetable_updated_at;autoUpdateTime" json:"timetable_updated_at"`

	TimetableSessions []TimetableSessionModel `gorm:"foreignKey:SessionTimetableID;references:TimetableID;constraint:OnDelete:CASCADE" json:"timetable_sessions,omitempty"`
}

func (TimetableModel) TableName() string {
	return "timetables"
}

// TimetableSessionModel maps the timetable_sessions table. SessionSeq keeps
// the append order of sessions; listings order by it, not by time of day.
type TimetableSessionModel struct {
	SessionID          uuid.UUID  `gorm:"column:session_id;type:uuid;default:gen_random_uuid();primaryKey" json:"session_id"`
	SessionTimetableID uuid.UUID  `gorm:"column:session_timetable_id;type:uuid;not null;index" json:"session_timetable_id"`
	SessionDay         string     `gorm:"column:session_day;type:varchar(10);not null" json:"session_day"`
	SessionStartTime   dbtime.Tod `gorm:"column:session_start_time;type:time;not null" json:"session_start_time"`
	SessionEndTime     dbtime.Tod `gorm:"column:session_end_time;type:time;not null" json:"session_end_time"`
	SessionCourseID    uuid.UUID  `gorm:"column:session_course_id;type:uuid;not null" json:"session_course_id"`
	SessionTeacherID   uuid.UUID  `gorm:"column:session_teacher_id;type:uuid;not null" json:"session_teacher_id"`
	SessionRoom        string     `gorm:"column:session_room;type:varchar(50);not null;default:''" json:"session_room"`
	SessionSeq         int64      `gorm:"column:session_seq;type:bigserial;->" json:"session_seq"`
}

func (TimetableSessionModel) TableName() string {
	return "timetable_sessions"
}
