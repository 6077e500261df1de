package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// ClassModel maps the classes table. ClassStudentIDs mirrors
// student_class_id on students; enrollment writes both sides.
type ClassModel struct {
	ClassID            uuid.UUID      `gorm:"column:class_id;type:uuid;default:gen_random_uuid();primaryKey" json:"class_id"`
	ClassName          string         `gorm:"column:class_name;type:varchar(100);not null" json:"class_name"`
	ClassLevel         string         `gorm:"column:class_level;type:varchar(50);not null" json:"class_level"`
	ClassSchoolYear    string         `gorm:"column:class_school_year;type:varchar(20);not null" json:"class_school_year"`
	ClassCapacity      int            `gorm:"column:class_capacity;not null" json:"class_capacity"`
	ClassStudentIDs    pq.StringArray `gorm:"column:class_student_ids;type:uuid[];not null;default:'{}'" json:"class_student_ids"`
	ClassLeadTeacherID *uuid.UUID     `gorm:"column:class_lead_teacher_id;type:uuid" json:"class_lead_teacher_id,omitempty"`
	ClassCourseIDs     pq.StringArray `gorm:"column:class_course_ids;type:uuid[];not null;default:'{}'" json:"class_course_ids"`
	ClassCreatedAt     time.Time      `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassUpdatedAt     time.Time      `gorm:"column:class_updated_at;autoUpdateTime" json:"class_updated_at"`
}

func (ClassModel) TableName() string {
	return "classes"
}
