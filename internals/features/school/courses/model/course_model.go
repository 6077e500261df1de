package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// CourseModel maps the courses table. CourseTeacherID is required on create
// and nulled when the owning teacher is deleted.
type CourseModel struct {
	CourseID              uuid.UUID      `gorm:"column:course_id;type:uuid;default:gen_random_uuid();primaryKey" json:"course_id"`
	CourseName            string         `gorm:"column:course_name;type:varchar(150);not null" json:"course_name"`
	CourseDescription     string         `gorm:"column:course_description;type:text;not null;default:''" json:"course_description"`
	CourseSubject         string         `gorm:"column:course_subject;type:varchar(100);not null" json:"course_subject"`
	CourseCoefficient     float64        `gorm:"column:course_coefficient;type:numeric(4,2);not null" json:"course_coefficient"`
	CourseTeacherID       *uuid.UUID     `gorm:"column:course_teacher_id;type:uuid;index" json:"course_teacher_id,omitempty"`
	CourseClassIDs        pq.StringArray `gorm:"column:course_class_ids;type:uuid[];not null;default:'{}'" json:"course_class_ids"`
	CourseDurationMinutes int            `gorm:"column:course_duration_minutes;not null" json:"course_duration_minutes"`
	CourseCreatedAt       time.Time      `gorm:"column:course_created_at;autoCreateTime" json:"course_created_at"`
	CourseUpdatedAt       time.Time      `gorm:"column:course_updated_at;autoUpdateTime" json:"course_updated_at"`
}

func (CourseModel) TableName() string {
	return "courses"
}
