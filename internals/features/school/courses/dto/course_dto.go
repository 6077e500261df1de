package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/lib/pq"

	coursemodel "schoolku_backend/internals/features/school/courses/model"
)

var validate = validator.New()

type CourseCreateRequest struct {
	Name            string   `json:"name" validate:"required,min=1,max=150"`
	Description     string   `json:"description" validate:"omitempty,max=2000"`
	Subject         string   `json:"subject" validate:"required,min=1,max=100"`
	Coefficient     float64  `json:"coefficient" validate:"required,gt=0"`
	TeacherID       string   `json:"teacher_id" validate:"required,uuid"`
	ClassIDs        []string `json:"class_ids" validate:"omitempty,dive,uuid"`
	DurationMinutes int      `json:"duration_minutes" validate:"required,gt=0"`
}

func (r *CourseCreateRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.Description = strings.TrimSpace(r.Description)
	r.Subject = strings.TrimSpace(r.Subject)
}

func (r *CourseCreateRequest) Validate() error {
	return validate.Struct(r)
}

func (r *CourseCreateRequest) ToModel() (*coursemodel.CourseModel, error) {
	teacherID, err := uuid.Parse(r.TeacherID)
	if err != nil {
		return nil, err
	}
	m := &coursemodel.CourseModel{
		CourseName:            r.Name,
		CourseDescription:     r.Description,
		CourseSubject:         r.Subject,
		CourseCoefficient:     r.Coefficient,
		CourseTeacherID:       &teacherID,
		CourseClassIDs:        pq.StringArray{},
		CourseDurationMinutes: r.DurationMinutes,
	}
	for _, raw := range r.ClassIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, err
		}
		m.CourseClassIDs = append(m.CourseClassIDs, id.String())
	}
	return m, nil
}

type CourseUpdateRequest struct {
	Name            *string   `json:"name" validate:"omitempty,min=1,max=150"`
	Description     *string   `json:"description" validate:"omitempty,max=2000"`
	Subject         *string   `json:"subject" validate:"omitempty,min=1,max=100"`
	Coefficient     *float64  `json:"coefficient" validate:"omitempty,gt=0"`
	TeacherID       *string   `json:"teacher_id" validate:"omitempty,uuid"`
	ClassIDs        *[]string `json:"class_ids" validate:"omitempty,dive,uuid"`
	DurationMinutes *int      `json:"duration_minutes" validate:"omitempty,gt=0"`
}

func (r *CourseUpdateRequest) Normalize() {
	if r.Name != nil {
		v := strings.TrimSpace(*r.Name)
		r.Name = &v
	}
	if r.Description != nil {
		v := strings.TrimSpace(*r.Description)
		r.Description = &v
	}
	if r.Subject != nil {
		v := strings.TrimSpace(*r.Subject)
		r.Subject = &v
	}
}

func (r *CourseUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Apply copies scalar fields only. Teacher and class set moves are handled
// by the controller since they touch other rows.
func (r *CourseUpdateRequest) Apply(m *coursemodel.CourseModel) {
	if r.Name != nil {
		m.CourseName = *r.Name
	}
	if r.Description != nil {
		m.CourseDescription = *r.Description
	}
	if r.Subject != nil {
		m.CourseSubject = *r.Subject
	}
	if r.Coefficient != nil {
		m.CourseCoefficient = *r.Coefficient
	}
	if r.DurationMinutes != nil {
		m.CourseDurationMinutes = *r.DurationMinutes
	}
}
