package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classmodel "schoolku_backend/internals/features/school/classes/model"
	classservice "schoolku_backend/internals/features/school/classes/service"
	coursemodel "schoolku_backend/internals/features/school/courses/model"
	studentdto "schoolku_backend/internals/features/school/students/dto"
	studentmodel "schoolku_backend/internals/features/school/students/model"
	authhelper "schoolku_backend/internals/features/users/auth/helper"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/refset"
)

type StudentController struct {
	DB *gorm.DB
}

func NewStudentController(db *gorm.DB) *StudentController {
	return &StudentController{DB: db}
}

func (ctrl *StudentController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&studentmodel.StudentModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count students")
	}

	var students []studentmodel.StudentModel
	if err := ctrl.DB.
		Order("student_created_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&students).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch students")
	}

	return helper.JsonList(c, "Students fetched successfully", students,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *StudentController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var student studentmodel.StudentModel
	if err := ctrl.DB.
		Preload("StudentGrades").
		Preload("StudentAbsences").
		First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	return helper.JsonOK(c, "Student fetched successfully", student)
}

// Create inserts the student; when a class is given its capacity is
// validated before anything is written.
func (ctrl *StudentController) Create(c *fiber.Ctx) error {
	var req studentdto.StudentCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	hash, err := authhelper.HashPassword(req.Password)
	if err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to hash password")
	}

	student, err := req.ToModel(hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field format")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var count int64
	if err := tx.Model(&studentmodel.StudentModel{}).
		Where("student_email = ?", student.StudentEmail).
		Count(&count).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check email")
	}
	if count > 0 {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, "Email is already registered")
	}

	if student.StudentClassID != nil {
		var class classmodel.ClassModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&class, "class_id = ?", *student.StudentClassID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
		}
		if err := classservice.CanEnroll(&class); err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}

		if err := tx.Create(student).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
		}
		class.ClassStudentIDs = refset.Add(class.ClassStudentIDs, student.StudentID)
		if err := tx.Save(&class).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
		}
	} else if err := tx.Create(student).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create student")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit student")
	}

	return helper.JsonCreated(c, "Student created successfully", student)
}

// Update edits scalar fields and handles class re-assignment: the student
// leaves the old class and enters the new one, capacity re-checked.
func (ctrl *StudentController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req studentdto.StudentUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var student studentmodel.StudentModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&student, "student_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if err := req.Apply(&student); err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field format")
	}

	if req.ClassID != nil {
		if err := ctrl.reassignClass(tx, &student, strings.TrimSpace(*req.ClassID)); err != nil {
			tx.Rollback()
			switch {
			case errors.Is(err, gorm.ErrRecordNotFound):
				return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
			case errors.Is(err, classservice.ErrCapacityExceeded),
				errors.Is(err, classservice.ErrAlreadyEnrolled):
				return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
			case errors.Is(err, errBadClassID):
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
			default:
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reassign class")
			}
		}
	}

	if err := tx.Save(&student).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit student update")
	}

	return helper.JsonUpdated(c, "Student updated successfully", student)
}

var errBadClassID = errors.New("invalid class id")

// reassignClass moves the student between class sets. Empty id means
// leaving the current class.
func (ctrl *StudentController) reassignClass(tx *gorm.DB, student *studentmodel.StudentModel, raw string) error {
	var target *uuid.UUID
	if raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return errBadClassID
		}
		target = &parsed
	}

	same := (student.StudentClassID == nil && target == nil) ||
		(student.StudentClassID != nil && target != nil && *student.StudentClassID == *target)
	if same {
		return nil
	}

	if student.StudentClassID != nil {
		var old classmodel.ClassModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&old, "class_id = ?", *student.StudentClassID).Error; err == nil {
			if err := classservice.Unenroll(&old, student); err == nil {
				if err := tx.Save(&old).Error; err != nil {
					return err
				}
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		student.StudentClassID = nil
	}

	if target != nil {
		var next classmodel.ClassModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&next, "class_id = ?", *target).Error; err != nil {
			return err
		}
		if err := classservice.Enroll(&next, student); err != nil {
			return err
		}
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
	}

	return nil
}

// Delete unenrolls first, then removes the student. Grades and absences go
// with it via the FK cascade.
func (ctrl *StudentController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var student studentmodel.StudentModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&student, "student_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if student.StudentClassID != nil {
		var class classmodel.ClassModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&class, "class_id = ?", *student.StudentClassID).Error; err == nil {
			class.ClassStudentIDs = refset.Remove(class.ClassStudentIDs, student.StudentID)
			if err := tx.Save(&class).Error; err != nil {
				tx.Rollback()
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
		}
	}

	if err := tx.Delete(&student).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete student")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit student delete")
	}

	return helper.JsonDeleted(c, "Student deleted successfully", fiber.Map{"student_id": student.StudentID})
}

// AddGrade appends a grade entry; the referenced course must exist.
func (ctrl *StudentController) AddGrade(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req studentdto.GradeCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	grade, err := req.ToModel(id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field format")
	}

	var student studentmodel.StudentModel
	if err := ctrl.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	var courseCount int64
	if err := ctrl.DB.Model(&coursemodel.CourseModel{}).
		Where("course_id = ?", grade.GradeCourseID).
		Count(&courseCount).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check course")
	}
	if courseCount == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	}

	if err := ctrl.DB.Create(grade).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create grade")
	}

	return helper.JsonCreated(c, "Grade added successfully", grade)
}

func (ctrl *StudentController) AddAbsence(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	var req studentdto.AbsenceCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	absence, err := req.ToModel(id)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field format")
	}

	var student studentmodel.StudentModel
	if err := ctrl.DB.First(&student, "student_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch student")
	}

	if err := ctrl.DB.Create(absence).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create absence")
	}

	return helper.JsonCreated(c, "Absence added successfully", absence)
}
