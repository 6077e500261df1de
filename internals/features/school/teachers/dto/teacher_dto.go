package dto

import (
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"gorm.io/datatypes"

	teachermodel "schoolku_backend/internals/features/school/teachers/model"
)

var validate = validator.New()

const dateLayout = "2006-01-02"

type Address struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type TeacherCreateRequest struct {
	FirstName string   `json:"first_name" validate:"required,min=2,max=100"`
	LastName  string   `json:"last_name" validate:"required,min=2,max=100"`
	Email     string   `json:"email" validate:"required,email"`
	Password  string   `json:"password" validate:"required,min=8,max=72"`
	Specialty string   `json:"specialty" validate:"omitempty,max=100"`
	HireDate  *string  `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Address   *Address `json:"address"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
}

func (r *TeacherCreateRequest) Normalize() {
	r.FirstName = strings.TrimSpace(r.FirstName)
	r.LastName = strings.TrimSpace(r.LastName)
	r.Email = strings.ToLower(strings.TrimSpace(r.Email))
	r.Specialty = strings.TrimSpace(r.Specialty)
}

func (r *TeacherCreateRequest) Validate() error {
	return validate.Struct(r)
}

func (r *TeacherCreateRequest) ToModel(passwordHash string) (*teachermodel.TeacherModel, error) {
	m := &teachermodel.TeacherModel{
		TeacherFirstName: r.FirstName,
		TeacherLastName:  r.LastName,
		TeacherEmail:     r.Email,
		TeacherPassword:  passwordHash,
		TeacherSpecialty: r.Specialty,
		TeacherPhone:     r.Phone,
	}
	if r.HireDate != nil {
		t, err := time.Parse(dateLayout, *r.HireDate)
		if err != nil {
			return nil, err
		}
		m.TeacherHireDate = &t
	}
	if r.Address != nil {
		raw, err := sonic.Marshal(r.Address)
		if err != nil {
			return nil, err
		}
		m.TeacherAddress = datatypes.JSON(raw)
	}
	return m, nil
}

type TeacherUpdateRequest struct {
	FirstName *string  `json:"first_name" validate:"omitempty,min=2,max=100"`
	LastName  *string  `json:"last_name" validate:"omitempty,min=2,max=100"`
	Email     *string  `json:"email" validate:"omitempty,email"`
	Specialty *string  `json:"specialty" validate:"omitempty,max=100"`
	HireDate  *string  `json:"hire_date" validate:"omitempty,datetime=2006-01-02"`
	Address   *Address `json:"address"`
	Phone     *string  `json:"phone" validate:"omitempty,max=30"`
}

func (r *TeacherUpdateRequest) Normalize() {
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
	if r.Specialty != nil {
		v := strings.TrimSpace(*r.Specialty)
		r.Specialty = &v
	}
}

func (r *TeacherUpdateRequest) Validate() error {
	return validate.Struct(r)
}

func (r *TeacherUpdateRequest) Apply(m *teachermodel.TeacherModel) error {
	if r.FirstName != nil {
		m.TeacherFirstName = *r.FirstName
	}
	if r.LastName != nil {
		m.TeacherLastName = *r.LastName
	}
	if r.Email != nil {
		m.TeacherEmail = *r.Email
	}
	if r.Specialty != nil {
		m.TeacherSpecialty = *r.Specialty
	}
	if r.HireDate != nil {
		t, err := time.Parse(dateLayout, *r.HireDate)
		if err != nil {
			return err
		}
		m.TeacherHireDate = &t
	}
	if r.Address != nil {
		raw, err := sonic.Marshal(r.Address)
		if err != nil {
			return err
		}
		m.TeacherAddress = datatypes.JSON(raw)
	}
	if r.Phone != nil {
		m.TeacherPhone = r.Phone
	}
	return nil
}
