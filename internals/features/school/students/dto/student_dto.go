package dto

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	studentmodel "schoolku_backend/internals/features/school/students/model"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

// Address is the embedded address object stored as JSONB.
type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type StudentCreateRequest struct {
	FirstName string   `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string   `json:"last_name" validate:"required,min=2,max=100"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8,max=72"`
	BirthDate *string  `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address   *Address `json:"address"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
	ClassID   *string  `json:"class_id" validate:"omitempty,uuid"`
}

func (r *StudentCreateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
}

func (r *StudentCreateRequest) Validate() error {
	return validate.Struct(r)
}

// ToModel builds the student row; the password must already be hashed.
func (r *StudentCreateRequest) ToModel(passwordHash string) (*studentmodel.StudentModel, error) {
	m := &studentmodel.StudentModel{
		StudentFirstName: r.FirstName,
		StudentLastName:  r.LastName,
		StudentEmail:     r.Email,
		StudentPassword:  passwordHash,
		StudentPhone:     r.Phone,
	}
	if r.BirthDate != nil {
		t, err := time.Parse(dateLayout, *r.BirthDate)
		if err != nil {
			return nil, err
		}
		m.StudentBirthDate = &t
	}
	if r.Address != nil {
		raw, err := sonic.Marshal(r.Address)
		if err != nil {
			return nil, err
		}
		m.StudentAddress = datatypes.JSON(raw)
	}
	if r.ClassID != nil {
		id, err := uuid.Parse(*r.ClassID)
		if err != nil {
			return nil, err
		}
		m.StudentClassID = &id
	}
	return m, nil
}

type StudentUpdateRequest struct {
	FirstName *string  `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string  `json:"last_name" validate:"omitempty,min=2,max=100"`
	Email     *string  `json:"email" validate:"omitempty,email"`
	BirthDate *string  `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Address   *Address `json:"address"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
	ClassID   *string  `json:"class_id"`
}

func (r *StudentUpdateRequest) Normalize() {
	if r.FirstName != nil {
		v := strings.TrimSpace(*r.FirstName)
		r.FirstName = &v
	}
	if r.LastName != nil {
		v := strings.TrimSpace(*r.LastName)
		r.LastName = &v
	}
	if r.Email != nil {
		v := strings.ToLower(strings.TrimSpace(*r.Email))
		r.Email = &v
	}
}

func (r *StudentUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Apply copies scalar fields; the class change is handled by the controller
// because it rewrites both class rows.
func (r *StudentUpdateRequest) Apply(m *studentmodel.StudentModel) error {
	if r.FirstName != nil {
		m.StudentFirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.StudentLastName = *r.LastName
	}
	if r.Email != nil {
		m.StudentEmail = *r.Email
	}
	if r.BirthDate != nil {
		t, err := time.Parse(dateLayout, *r.BirthDate)
		if err != nil {
			return err
		}
		m.StudentBirthDate = &t
	}
	if r.Address != nil {
		raw, err := sonic.Marshal(r.Address)
		if err != nil {
			return err
		}
		m.StudentAddress = datatypes.JSON(raw)
	}
	if r.Phone != nil {
		m.StudentPhone = r.Phone
	}
	return nil
}

type GradeCreateRequest struct {
	CourseID string  `json:"course_id" validate:"required,uuid"`
	Value    float64 `json:"value" validate:"gte=0,lte=20"`
	Date     string  `json:"date" validate:"required,datetime=2006-01-02"`
}

func (r *GradeCreateRequest) Validate() error {
	return validate.Struct(r)
}

func (r *GradeCreateRequest) ToModel(studentID uuid.UUID) (*studentmodel.StudentGradeModel, error) {
	courseID, err := uuid.Parse(r.CourseID)
	if err != nil {
		return nil, err
	}
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, err
	}
	return &studentmodel.StudentGradeModel{
		GradeStudentID: studentID,
		GradeCourseID:  courseID,
		GradeValue:     r.Value,
		GradeDate:      date,
	}, nil
}

type AbsenceCreateRequest struct {
	Date      string  `json:"date" validate:"required,datetime=2006-01-02"`
	Justified bool    `json:"justified"`
	Reason    *string `json:"reason" validate:"omitempty,max=500"`
}

func (r *AbsenceCreateRequest) Validate() error {
	return validate.Struct(r)
}

func (r *AbsenceCreateRequest) ToModel(studentID uuid.UUID) (*studentmodel.StudentAbsenceModel, error) {
	date, err := time.Parse(dateLayout, r.Date)
	if err != nil {
		return nil, err
	}
	return &studentmodel.StudentAbsenceModel{
		AbsenceStudentID: studentID,
		AbsenceDate:      date,
		AbsenceJustified: r.Justified,
		AbsenceReason:    r.Reason,
	}, nil
}
