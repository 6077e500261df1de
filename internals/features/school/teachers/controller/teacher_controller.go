package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classmodel "schoolku_backend/internals/features/school/classes/model"
	coursemodel "schoolku_backend/internals/features/school/courses/model"
	teacherdto "schoolku_backend/internals/features/school/teachers/dto"
	teachermodel "schoolku_backend/internals/features/school/teachers/model"
	"schoolku_backend/internals/features/school/teachers/service"
	authhelper "schoolku_backend/internals/features/users/auth/helper"
	helper "schoolku_backend/internals/helpers"
)

type TeacherController struct {
	DB *gorm.DB
}

func NewTeacherController(db *gorm.DB) *TeacherController {
	return &TeacherController{DB: db}
}

func (ctrl *TeacherController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&teachermodel.TeacherModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count teachers")
	}

	var teachers []teachermodel.TeacherModel
	if err := ctrl.DB.
		Order("teacher_created_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&teachers).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teachers")
	}

	return helper.JsonList(c, "Teachers fetched successfully", teachers,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *TeacherController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	var teacher teachermodel.TeacherModel
	if err := ctrl.DB.First(&teacher, "teacher_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	return helper.JsonOK(c, "Teacher fetched successfully", teacher)
}

func (ctrl *TeacherController) Create(c *fiber.Ctx) error {
	var req teacherdto.TeacherCreateRequest
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
	teacher, err := req.ToModel(hash)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field format")
	}

	var count int64
	if err := ctrl.DB.Model(&teachermodel.TeacherModel{}).
		Where("teacher_email = ?", teacher.TeacherEmail).
		Count(&count).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check email")
	}
	if count > 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Email is already registered")
	}

	if err := ctrl.DB.Create(teacher).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create teacher")
	}

	return helper.JsonCreated(c, "Teacher created successfully", teacher)
}

func (ctrl *TeacherController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	var req teacherdto.TeacherUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	var teacher teachermodel.TeacherModel
	if err := ctrl.DB.First(&teacher, "teacher_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	if err := req.Apply(&teacher); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field format")
	}
	if err := ctrl.DB.Save(&teacher).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update teacher")
	}

	return helper.JsonUpdated(c, "Teacher updated successfully", teacher)
}

// Delete removes the teacher. Its courses lose their teacher ref and the
// classes it led lose their lead ref; neither is deleted.
func (ctrl *TeacherController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var teacher teachermodel.TeacherModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&teacher, "teacher_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	if err := tx.Model(&coursemodel.CourseModel{}).
		Where("course_teacher_id = ?", teacher.TeacherID).
		Update("course_teacher_id", nil).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to detach courses")
	}

	if err := tx.Model(&classmodel.ClassModel{}).
		Where("class_lead_teacher_id = ?", teacher.TeacherID).
		Update("class_lead_teacher_id", nil).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to detach classes")
	}

	if err := tx.Delete(&teacher).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete teacher")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit teacher delete")
	}

	return helper.JsonDeleted(c, "Teacher deleted successfully", fiber.Map{"teacher_id": teacher.TeacherID})
}

// AssignCourse writes the teacher's set and the course's teacher ref in one
// transaction.
func (ctrl *TeacherController) AssignCourse(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	teacher, course, err := lockTeacherCourse(tx, teacherID, courseID)
	if err != nil {
		tx.Rollback()
		return mapAssignLookupError(c, err)
	}

	if err := service.AssignCourse(teacher, course); err != nil {
		tx.Rollback()
		return mapAssignmentError(c, err)
	}

	if err := tx.Save(teacher).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update teacher")
	}
	if err := tx.Save(course).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit assignment")
	}

	return helper.JsonUpdated(c, "Course assigned successfully", teacher)
}

func (ctrl *TeacherController) UnassignCourse(c *fiber.Ctx) error {
	teacherID, err := uuid.Parse(c.Params("teacherId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
	}
	courseID, err := uuid.Parse(c.Params("courseId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	teacher, course, err := lockTeacherCourse(tx, teacherID, courseID)
	if err != nil {
		tx.Rollback()
		return mapAssignLookupError(c, err)
	}

	if err := service.UnassignCourse(teacher, course); err != nil {
		tx.Rollback()
		return mapAssignmentError(c, err)
	}

	if err := tx.Save(teacher).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update teacher")
	}
	if err := tx.Save(course).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit unassignment")
	}

	return helper.JsonUpdated(c, "Course unassigned successfully", teacher)
}

var (
	errTeacherNotFound = errors.New("teacher not found")
	errCourseNotFound  = errors.New("course not found")
)

func lockTeacherCourse(tx *gorm.DB, teacherID, courseID uuid.UUID) (*teachermodel.TeacherModel, *coursemodel.CourseModel, error) {
	var teacher teachermodel.TeacherModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&teacher, "teacher_id = ?", teacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errTeacherNotFound
		}
		return nil, nil, err
	}

	var course coursemodel.CourseModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&course, "course_id = ?", courseID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, errCourseNotFound
		}
		return nil, nil, err
	}

	return &teacher, &course, nil
}

func mapAssignLookupError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, errTeacherNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
	case errors.Is(err, errCourseNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch records")
	}
}

func mapAssignmentError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrAlreadyAssigned), errors.Is(err, service.ErrNotAssigned):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Assignment failed")
	}
}
