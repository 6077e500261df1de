package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// TeacherModel maps the teachers table. TeacherCourseIDs mirrors
// course_teacher_id on courses, TeacherLeadClassIDs mirrors
// class_lead_teacher_id on classes.
type TeacherModel struct {
	TeacherID           uuid.UUID      `gorm:"column:teacher_id;type:uuid;default:gen_random_uuid();primaryKey" json:"teacher_id"`
	TeacherFirstName    string         `gorm:"column:teacher_first_name;type:varchar(100);not null" json:"teacher_first_name"`
	TeacherLastName     string         `gorm:"column:teacher_last_name;type:varchar(100);not null" json:"teacher_last_name"`
	TeacherEmail        string         `gorm:"column:teacher_email;type:varchar(255);uniqueIndex;not null" json:"teacher_email"`
	TeacherPassword     string         `gorm:"column:teacher_password;type:varchar(255);not null" json:"-"`
	TeacherSpecialty    string         `gorm:"column:teacher_specialty;type:varchar(100);not null;default:''" json:"teacher_specialty"`
	TeacherHireDate     *time.Time     `gorm:"column:teacher_hire_date;type:date" json:"teacher_hire_date,omitempty"`
	TeacherAddress      datatypes.JSON `gorm:"column:teacher_address;type:jsonb" json:"teacher_address,omitempty"`
	TeacherPhone        *string        `gorm:"column:teacher_phone;type:varchar(30)" json:"teacher_phone,omitempty"`
	TeacherCourseIDs    pq.StringArray `gorm:"column:teacher_course_ids;type:uuid[];not null;default:'{}'" json:"teacher_course_ids"`
	TeacherLeadClassIDs pq.StringArray `gorm:"column:teacher_lead_class_ids;type:uuid[];not null;default:'{}'" json:"teacher_lead_class_ids"`
	TeacherCreatedAt    time.Time      `gorm:"column:teacher_created_at;autoCreateTime" json:"teacher_created_at"`
	TeacherUpdatedAt    time.Time      `gorm:"column:teacher_updated_at;autoUpdateTime" json:"teacher_updated_at"`
}

func (TeacherModel) TableName() string {
	return "teachers"
}
