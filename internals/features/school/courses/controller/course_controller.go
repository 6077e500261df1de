package controller

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classmodel "schoolku_backend/internals/features/school/classes/model"
	coursedto "schoolku_backend/internals/features/school/courses/dto"
	coursemodel "schoolku_backend/internals/features/school/courses/model"
	teachermodel "schoolku_backend/internals/features/school/teachers/model"
	helper "schoolku_backend/internals/helpers"
	"schoolku_backend/internals/helpers/refset"
)

type CourseController struct {
	DB *gorm.DB
}

func NewCourseController(db *gorm.DB) *CourseController {
	return &CourseController{DB: db}
}

func (ctrl *CourseController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&coursemodel.CourseModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count courses")
	}

	var courses []coursemodel.CourseModel
	if err := ctrl.DB.
		Order("course_created_at ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&courses).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch courses")
	}

	return helper.JsonList(c, "Courses fetched successfully", courses,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

func (ctrl *CourseController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var course coursemodel.CourseModel
	if err := ctrl.DB.First(&course, "course_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	return helper.JsonOK(c, "Course fetched successfully", course)
}

// Create inserts the course, adds it to the owning teacher's set and to the
// course set of every listed class, all in one transaction.
func (ctrl *CourseController) Create(c *fiber.Ctx) error {
	var req coursedto.CourseCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Normalize()
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	course, err := req.ToModel()
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid field format")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var teacher teachermodel.TeacherModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&teacher, "teacher_id = ?", *course.CourseTeacherID).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
	}

	if err := tx.Create(course).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create course")
	}

	teacher.TeacherCourseIDs = refset.Add(teacher.TeacherCourseIDs, course.CourseID)
	if err := tx.Save(&teacher).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update teacher")
	}

	for _, classID := range refset.ToUUIDs(course.CourseClassIDs) {
		if err := addCourseToClass(tx, classID, course.CourseID); err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Class not found: "+classID.String())
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit course")
	}

	return helper.JsonCreated(c, "Course created successfully", course)
}

// Update edits the course, moving it between teacher sets when the teacher
// changes and diffing the class sets when the class list changes.
func (ctrl *CourseController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	var req coursedto.CourseUpdateRequest
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

	var course coursemodel.CourseModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&course, "course_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	req.Apply(&course)

	if req.TeacherID != nil {
		newTeacherID, err := uuid.Parse(*req.TeacherID)
		if err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusBadRequest, "Invalid teacher id")
		}
		if course.CourseTeacherID == nil || *course.CourseTeacherID != newTeacherID {
			if err := ctrl.moveTeacher(tx, &course, newTeacherID); err != nil {
				tx.Rollback()
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return helper.JsonError(c, fiber.StatusNotFound, "Teacher not found")
				}
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to move course between teachers")
			}
		}
	}

	if req.ClassIDs != nil {
		if err := ctrl.diffClasses(tx, &course, *req.ClassIDs); err != nil {
			tx.Rollback()
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
			}
			if errors.Is(err, errBadClassID) {
				return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
			}
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class sets")
		}
	}

	if err := tx.Save(&course).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update course")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit course update")
	}

	return helper.JsonUpdated(c, "Course updated successfully", course)
}

// Delete removes the course from its teacher's set and every class's set,
// then deletes the row.
func (ctrl *CourseController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid course id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var course coursemodel.CourseModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&course, "course_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Course not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch course")
	}

	if course.CourseTeacherID != nil {
		var teacher teachermodel.TeacherModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&teacher, "teacher_id = ?", *course.CourseTeacherID).Error; err == nil {
			teacher.TeacherCourseIDs = refset.Remove(teacher.TeacherCourseIDs, course.CourseID)
			if err := tx.Save(&teacher).Error; err != nil {
				tx.Rollback()
				return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update teacher")
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch teacher")
		}
	}

	for _, classID := range refset.ToUUIDs(course.CourseClassIDs) {
		if err := removeCourseFromClass(tx, classID, course.CourseID); err != nil &&
			!errors.Is(err, gorm.ErrRecordNotFound) {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to update class")
		}
	}

	if err := tx.Delete(&course).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete course")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit course delete")
	}

	return helper.JsonDeleted(c, "Course deleted successfully", fiber.Map{"course_id": course.CourseID})
}

var errBadClassID = errors.New("invalid class id")

func (ctrl *CourseController) moveTeacher(tx *gorm.DB, course *coursemodel.CourseModel, newTeacherID uuid.UUID) error {
	if course.CourseTeacherID != nil {
		var old teachermodel.TeacherModel
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&old, "teacher_id = ?", *course.CourseTeacherID).Error; err == nil {
			old.TeacherCourseIDs = refset.Remove(old.TeacherCourseIDs, course.CourseID)
			if err := tx.Save(&old).Error; err != nil {
				return err
			}
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}

	var next teachermodel.TeacherModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&next, "teacher_id = ?", newTeacherID).Error; err != nil {
		return err
	}
	next.TeacherCourseIDs = refset.Add(next.TeacherCourseIDs, course.CourseID)
	if err := tx.Save(&next).Error; err != nil {
		return err
	}

	course.CourseTeacherID = &newTeacherID
	return nil
}

// diffClasses reconciles the course's class list against the requested one.
func (ctrl *CourseController) diffClasses(tx *gorm.DB, course *coursemodel.CourseModel, rawIDs []string) error {
	wanted := make(map[uuid.UUID]bool, len(rawIDs))
	for _, raw := range rawIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return errBadClassID
		}
		wanted[id] = true
	}

	current := make(map[uuid.UUID]bool)
	for _, id := range refset.ToUUIDs(course.CourseClassIDs) {
		current[id] = true
	}

	for id := range current {
		if !wanted[id] {
			if err := removeCourseFromClass(tx, id, course.CourseID); err != nil &&
				!errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
		}
	}
	for id := range wanted {
		if !current[id] {
			if err := addCourseToClass(tx, id, course.CourseID); err != nil {
				return err
			}
		}
	}

	course.CourseClassIDs = refset.FromUUIDs(keysOf(wanted))
	return nil
}

func keysOf(m map[uuid.UUID]bool) []uuid.UUID {
	out := make([]uuid.UUID, 0, len(m))
	for id := range m {
		out = append(out, id)
	}
	return out
}

func addCourseToClass(tx *gorm.DB, classID, courseID uuid.UUID) error {
	var class classmodel.ClassModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&class, "class_id = ?", classID).Error; err != nil {
		return err
	}
	class.ClassCourseIDs = refset.Add(class.ClassCourseIDs, courseID)
	return tx.Save(&class).Error
}

func removeCourseFromClass(tx *gorm.DB, classID, courseID uuid.UUID) error {
	var class classmodel.ClassModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&class, "class_id = ?", classID).Error; err != nil {
		return err
	}
	class.ClassCourseIDs = refset.Remove(class.ClassCourseIDs, courseID)
	return tx.Save(&class).Error
}
