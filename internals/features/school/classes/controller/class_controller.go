package controller

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classdto "schoolku_backend/internals/features/school/classes/dto"
	classmodel "schoolku_backend/internals/features/school/classes/model"
	"schoolku_backend/internals/features/school/classes/service"
	studentmodel "schoolku_backend/internals/features/school/students/model"
	teachermodel "schoolku_backend/internals/features/school/teachers/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/refset"
)

type ClassController struct {
	DB *gorm.DB
}

func NewClassController(db *gorm.DB) *ClassController {
	return &ClassController{DB: db}
}

func (ctrl *ClassController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&classmodel.ClassModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count classes")
	}

	var classes []classmodel.ClassModel
	if err := ctrl.DB.
		Order("class_created_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&classes).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch classes")
	}

	return helper.JsonList(c, "Classes fetched successfully", classes,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *ClassController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var class classmodel.ClassModel
	if err := ctrl.DB.First(&class, "class_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	return helper.JsonOK(c, "Class fetched successfully", class)
}

func (ctrl *ClassController) Create(c *fiber.Ctx) error {
	var req classdto.ClassCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	class := req.ToModel()

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	if class.ClassLeadTeacherID != nil {
		var teacher teachermodel.TeacherModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&teacher, "teacher_id = ?", *class.ClassLeadTeacherID).Error; err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Lead teacher not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
		}
		if err := tx.Create(class).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create class")
		}
		teacher.TeacherLeadClassIDs = refset.Add(teacher.TeacherLeadClassIDs, class.ClassID)
		if err := tx.Save(&teacher).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update teacher")
		}
	} else if err := tx.Create(class).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create class")
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit class")
	}

	return helper.JsonCreated(c, "Class created successfully", class)
}

func (ctrl *ClassController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var req classdto.ClassUpdateRequest
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

	var class classmodel.ClassModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&class, "class_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	if req.ClassCapacity != nil && *req.ClassCapacity < len(class.ClassStudentIDs) {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, "Capacity cannot be lower than current enrollment")
	}
	req.Apply(&class)

	// Lead teacher move. Empty string clears the reference.
	if req.ClassLeadTeacherID != nil {
		raw := strings.TrimSpace(*req.ClassLeadTeacherID)

		var newLead *uuid.UUID
		if raw != "" {
			parsed, err := uuid.Parse(raw)
			if err != nil {
				tx.Rollback()
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid lead teacher id")
			}
			newLead = &parsed
		}

		if err := ctrl.moveLeadTeacher(tx, &class, newLead); err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Lead teacher not found")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update lead teacher")
		}
	}

	if err := tx.Save(&class).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit class update")
	}

	return helper.JsonUpdated(c, "Class updated successfully", class)
}

// moveLeadTeacher keeps teacher_lead_class_ids in sync when the class lead
// reference changes.
func (ctrl *ClassController) moveLeadTeacher(tx *gorm.DB, class *classmodel.ClassModel, newLead *uuid.UUID) error {
	same := (class.ClassLeadTeacherID == nil && newLead == nil) ||
		(class.ClassLeadTeacherID != nil && newLead != nil && *class.ClassLeadTeacherID == *newLead)
	if same {
		return nil
	}

	if class.ClassLeadTeacherID != nil {
		var old teachermodel.TeacherModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&old, "teacher_id = ?", *class.ClassLeadTeacherID).Error; err == nil {
			old.TeacherLeadClassIDs = refset.Remove(old.TeacherLeadClassIDs, class.ClassID)
			if err := tx.Save(&old).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	if newLead != nil {
		var next teachermodel.TeacherModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&next, "teacher_id = ?", *newLead).Error; err != nil {
			return err
		}
		next.TeacherLeadClassIDs = refset.Add(next.TeacherLeadClassIDs, class.ClassID)
		if err := tx.Save(&next).Error; err != nil {
			return err
		}
	}

	class.ClassLeadTeacherID = newLead
	return nil
}

// Delete removes the class, clearing the class reference of every enrolled
// student and the lead teacher's set. Timetables pointing at the class are
// left in place.
func (ctrl *ClassController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var class classmodel.ClassModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&class, "class_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch class")
	}

	if err := tx.Model(&studentmodel.StudentModel{}).
		Where("student_class_id = ?", class.ClassID).
		Update("student_class_id", nil).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to detach students")
	}

	if class.ClassLeadTeacherID != nil {
		var teacher teachermodel.TeacherModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&teacher, "teacher_id = ?", *class.ClassLeadTeacherID).Error; err == nil {
			teacher.TeacherLeadClassIDs = refset.Remove(teacher.TeacherLeadClassIDs, class.ClassID)
			if err := tx.Save(&teacher).Error; err != nil {
				tx.Rollback()
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update teacher")
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
		}
	}

	if err := tx.Delete(&class).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete class")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit class delete")
	}

	return helper.JsonDeleted(c, "Class deleted successfully", fiber.Map{"class_id": class.ClassID})
}

// EnrollStudent writes both sides of the enrollment in one transaction.
func (ctrl *ClassController) EnrollStudent(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	class, student, err := lockPair(tx, classID, studentID)
	if err != nil {
		tx.Rollback()
		return mapLookupError(c, err)
	}

	if err := service.Enroll(class, student); err != nil {
		tx.Rollback()
		return mapEnrollmentError(c, err)
	}

	if err := tx.Save(class).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
	}
	if err := tx.Save(student).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit enrollment")
	}

	return helper.JsonUpdated(c, "Student enrolled successfully", class)
}

func (ctrl *ClassController) UnenrollStudent(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	studentID, err := uuid.Parse(c.Params("studentId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid student id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	class, student, err := lockPair(tx, classID, studentID)
	if err != nil {
		tx.Rollback()
		return mapLookupError(c, err)
	}

	if err := service.Unenroll(class, student); err != nil {
		tx.Rollback()
		return mapEnrollmentError(c, err)
	}

	if err := tx.Save(class).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
	}
	if err := tx.Save(student).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update student")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit unenrollment")
	}

	return helper.JsonUpdated(c, "Student unenrolled successfully", class)
}

var (
	errClassNotFound   = errors.New("class not found")
	errStudentNotFound = errors.New("student not found")
)

// lockPair loads both rows with row locks, class first to keep lock order
// stable across concurrent enroll/unenroll calls.
func lockPair(tx *gorm.DB, classID, studentID uuid.UUID) (*classmodel.ClassModel, *studentmodel.StudentModel, error) {
	var class classmodel.ClassModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&class, "class_id = ?", classID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errClassNotFound
		}
		return nil, nil, err
	}

	var student studentmodel.StudentModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&student, "student_id = ?", studentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errStudentNotFound
		}
		return nil, nil, err
	}

	return &class, &student, nil
}

func mapLookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errClassNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	case errors.Is(err, errStudentNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Student not found")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch records")
	}
}

func mapEnrollmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAlreadyEnrolled),
		errors.Is(err, service.ErrNotEnrolled),
		errors.Is(err, service.ErrCapacityExceeded):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Enrollment failed")
	}
}
