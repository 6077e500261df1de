package dto

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	classmodel "schoolku_backend/internals/features/school/classes/model"
)

var validate = validator.New()

type ClassCreateRequest struct {
	ClassName          string  `json:"class_name" validate:"required,min=1,max=100"`
	ClassLevel         string  `json:"class_level" validate:"required,min=1,max=50"`
	ClassSchoolYear    string  `json:"class_school_year" validate:"required,min=4,max=20"`
	ClassCapacity      int     `json:"class_capacity" validate:"required,gte=1"`
	ClassLeadTeacherID *string `json:"class_lead_teacher_id" validate:"omitempty,uuid"`
}

func (r *ClassCreateRequest) Normalize() {
	r.ClassName = strings.TrimSpace(r.ClassName)
	r.ClassLevel = strings.TrimSpace(r.ClassLevel)
	r.ClassSchoolYear = strings.TrimSpace(r.ClassSchoolYear)
}

func (r *ClassCreateRequest) Validate() error {
	return validate.Struct(r)
}

func (r *ClassCreateRequest) ToModel() *classmodel.ClassModel {
	m := &classmodel.ClassModel{
		ClassName:       r.ClassName,
		ClassLevel:      r.ClassLevel,
		ClassSchoolYear: r.ClassSchoolYear,
		ClassCapacity:   r.ClassCapacity,
	}
	if r.ClassLeadTeacherID != nil {
		if id, err := uuid.Parse(*r.ClassLeadTeacherID); err == nil {
			m.ClassLeadTeacherID = &id
		}
	}
	return m
}

type ClassUpdateRequest struct {
	ClassName          *string `json:"class_name" validate:"omitempty,min=1,max=100"`
	ClassLevel         *string `json:"class_level" validate:"omitempty,min=1,max=50"`
	ClassSchoolYear    *string `json:"class_school_year" validate:"omitempty,min=4,max=20"`
	ClassCapacity      *int    `json:"class_capacity" validate:"omitempty,gte=1"`
	ClassLeadTeacherID *string `json:"class_lead_teacher_id" validate:"omitempty,uuid"`
}

func (r *ClassUpdateRequest) Normalize() {
	if r.ClassName != nil {
		v := strings.TrimSpace(*r.ClassName)
		r.ClassName = &v
	}
	if r.ClassLevel != nil {
		v := strings.TrimSpace(*r.ClassLevel)
		r.ClassLevel = &v
	}
	if r.ClassSchoolYear != nil {
		v := strings.TrimSpace(*r.ClassSchoolYear)
		r.ClassSchoolYear = &v
	}
}

func (r *ClassUpdateRequest) Validate() error {
	return validate.Struct(r)
}

// Apply copies the set fields onto the model. The lead teacher change is
// handled by the controller because it touches the teacher row too.
func (r *ClassUpdateRequest) Apply(m *classmodel.ClassModel) {
	if r.ClassName != nil {
		m.ClassName = *r.ClassName
	}
	if r.ClassLevel != nil {
		m.ClassLevel = *r.ClassLevel
	}
	if r.ClassSchoolYear != nil {
		m.ClassSchoolYear = *r.ClassSchoolYear
	}
	if r.ClassCapacity != nil {
		m.ClassCapacity = *r.ClassCapacity
	}
}
