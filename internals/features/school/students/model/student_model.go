package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// StudentModel maps the students table. The class reference is nullable;
// enrollment keeps it in sync with the class student set.
type StudentModel struct {
	StudentID        uuid.UUID      `gorm:"column:student_id;type:uuid;default:gen_random_uuid();primaryKey" json:"student_id"`
	StudentFirstName string         `gorm:"column:student_first_name;type:varchar(100);not null" json:"student_first_name"`
	StudentLastName  string         `gorm:"column:student_last_name;type:varchar(100);not null" json:"student_last_name"`
	StudentEmail     string         `gorm:"column:student_email;type:varchar(255);uniqueIndex;not null" json:"student_email"`
	StudentPassword  string         `gorm:"column:student_password;type:varchar(255);not null" json:"-"`
	StudentBirthDate *time.Time     `gorm:"column:student_birth_date;type:date" json:"student_birth_date,omitempty"`
	StudentAddress   datatypes.JSON `gorm:"column:student_address;type:jsonb" json:"student_address,omitempty"`
	StudentPhone     *string        `gorm:"column:student_phone;type:varchar(30)" json:"student_phone,omitempty"`
	StudentClassID   *uuid.UUID     `gorm:"column:student_class_id;type:uuid;index" json:"student_class_id,omitempty"`
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentUpdatedAt time.Time      `gorm:"column:student_updated_at;autoUpdateTime" json:"student_updated_at"`

	StudentGrades   []StudentGradeModel   `gorm:"foreignKey:GradeStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"student_grades,omitempty"`
	StudentAbsences []StudentAbsenceModel `gorm:"foreignKey:AbsenceStudentID;references:StudentID;constraint:OnDelete:CASCADE" json:"student_absences,omitempty"`
}

func (StudentModel) TableName() string {
	return "students"
}

type StudentGradeModel struct {
	GradeID        uuid.UUID `gorm:"column:grade_id;type:uuid;default:gen_random_uuid();primaryKey" json:"grade_id"`
	GradeStudentID uuid.UUID `gorm:"column:grade_student_id;type:uuid;not null;index" json:"grade_student_id"`
	GradeCourseID  uuid.UUID `gorm:"column:grade_course_id;type:uuid;not null" json:"grade_course_id"`
	GradeValue     float64   `gorm:"column:grade_value;type:numeric(4,2);not null" json:"grade_value"`
	GradeDate      time.Time `gorm:"column:grade_date;type:date;not null" json:"grade_date"`
	GradeCreatedAt time.Time `gorm:"column:grade_created_at;autoCreateTime" json:"grade_created_at"`
}

func (StudentGradeModel) TableName() string {
	return "student_grades"
}

type StudentAbsenceModel struct {
	AbsenceID        uuid.UUID `gorm:"column:absence_id;type:uuid;default:gen_random_uuid();primaryKey" json:"absence_id"`
	AbsenceStudentID uuid.UUID `gorm:"column:absence_student_id;type:uuid;not null;index" json:"absence_student_id"`
	AbsenceDate      time.Time `gorm:"column:absence_date;type:date;not null" json:"absence_date"`
	AbsenceJustified bool      `gorm:"column:absence_justified;not null;default:false" json:"absence_justified"`
	AbsenceReason    *string   `gorm:"column:absence_reason;type:text" json:"absence_reason,omitempty"`
	AbsenceCreatedAt time.Time `gorm:"column:absence_created_at;autoCreateTime" json:"absence_created_at"`
}

func (StudentAbsenceModel) TableName() string {
	return "student_absences"
}
