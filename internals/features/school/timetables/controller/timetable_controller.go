package controller

import (
	"errors"
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	classmodel "schoolku_backend/internals/features/school/classes/model"
	coursemodel "schoolku_backend/internals/features/school/courses/model"
	teachermodel "schoolku_backend/internals/features/school/teachers/model"
	teacherservice "schoolku_backend/internals/features/school/teachers/service"
	timetabledto "schoolku_backend/internals/features/school/timetables/dto"
	timetablemodel "schoolku_backend/internals/features/school/timetables/model"
	"schoolku_backend/internals/features/school/timetables/service"
	helper "schoolku_backend/internals/helpers"
)

type TimetableController struct {
	DB *gorm.DB
}

func NewTimetableController(db *gorm.DB) *TimetableController {
	return &TimetableController{DB: db}
}

func (ctrl *TimetableController) GetAll(c *fiber.Ctx) error {
	p := helper.ResolvePaging(c, 20, 100)

	var total int64
	if err := ctrl.DB.Model(&timetablemodel.TimetableModel{}).Count(&total).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to count timetables")
	}

	var timetables []timetablemodel.TimetableModel
	if err := ctrl.DB.
		Preload("TimetableSessions", sessionOrder).
		Order("timetable_year ASC, timetable_week ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&timetables).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetables")
	}

	return helper.JsonList(c, "Timetables fetched successfully", timetables,
		helper.BuildPaginationFromPage(total, p.Page, p.PerPage))
}

// sessionOrder keeps the append order of sessions stable in every listing.
func sessionOrder(db *gorm.DB) *gorm.DB {
	return db.Order("session_seq ASC")
}

func (ctrl *TimetableController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid timetable id")
	}

	var timetable timetablemodel.TimetableModel
	if err := ctrl.DB.
		Preload("TimetableSessions", sessionOrder).
		First(&timetable, "timetable_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Timetable not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}

	return helper.JsonOK(c, "Timetable fetched successfully", timetable)
}

// GetByClass lists every timetable of a class.
func (ctrl *TimetableController) GetByClass(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	var timetables []timetablemodel.TimetableModel
	if err := ctrl.DB.
		Preload("TimetableSessions", sessionOrder).
		Where("timetable_class_id = ?", classID).
		Order("timetable_year ASC, timetable_week ASC").
		Find(&timetables).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetables")
	}

	return helper.JsonOK(c, "Timetables fetched successfully", timetables)
}

// GetByClassWeekYear fetches the single timetable for (class, week, year).
func (ctrl *TimetableController) GetByClassWeekYear(c *fiber.Ctx) error {
	classID, err := uuid.Parse(c.Params("classId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}
	week, err := strconv.Atoi(c.Params("week"))
	if err != nil || week < 1 || week > 53 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid week")
	}
	year, err := strconv.Atoi(c.Params("year"))
	if err != nil || year < 2000 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid year")
	}

	var timetable timetablemodel.TimetableModel
	if err := ctrl.DB.
		Preload("TimetableSessions", sessionOrder).
		Where("timetable_class_id = ? AND timetable_week = ? AND timetable_year = ?", classID, week, year).
		First(&timetable).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Timetable not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}

	return helper.JsonOK(c, "Timetable fetched successfully", timetable)
}

// Create inserts the timetable and its sessions all-or-nothing. Every
// session reference is validated before anything is written.
func (ctrl *TimetableController) Create(c *fiber.Ctx) error {
	var req timetabledto.TimetableCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	classID, err := uuid.Parse(req.ClassID)
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid class id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var classCount int64
	if err := tx.Model(&classmodel.ClassModel{}).
		Where("class_id = ?", classID).
		Count(&classCount).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check class")
	}
	if classCount == 0 {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusNotFound, "Class not found")
	}

	var dupCount int64
	if err := tx.Model(&timetablemodel.TimetableModel{}).
		Where("timetable_class_id = ? AND timetable_week = ? AND timetable_year = ?", classID, req.Week, req.Year).
		Count(&dupCount).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to check duplicates")
	}
	if dupCount > 0 {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, service.ErrDuplicateTimetable.Error())
	}

	timetable := timetablemodel.TimetableModel{
		TimetableClassID: classID,
		TimetableWeek:    req.Week,
		TimetableYear:    req.Year,
	}

	sessions := make([]*timetablemodel.TimetableSessionModel, 0, len(req.Sessions))
	for i := range req.Sessions {
		session, err := req.Sessions[i].ToModel(uuid.Nil)
		if err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		if err := ctrl.validateSessionRefs(tx, session); err != nil {
			tx.Rollback()
			return mapSessionError(c, err)
		}
		sessions = append(sessions, session)
	}

	if err := tx.Create(&timetable).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create timetable")
	}
	for _, session := range sessions {
		session.SessionTimetableID = timetable.TimetableID
		if err := tx.Create(session).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create session")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit timetable")
	}

	return ctrl.respondWithTimetable(c, timetable.TimetableID, true)
}

// Replace swaps the whole session list. References and teacher/course
// pairing are re-validated; overlaps inside the replacement set are not
// re-checked here, matching the add-session path being the only overlap
// gate.
func (ctrl *TimetableController) Replace(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid timetable id")
	}

	var req timetabledto.TimetableReplaceRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var timetable timetablemodel.TimetableModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&timetable, "timetable_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Timetable not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}

	sessions := make([]*timetablemodel.TimetableSessionModel, 0, len(req.Sessions))
	for i := range req.Sessions {
		session, err := req.Sessions[i].ToModel(timetable.TimetableID)
		if err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
		}
		if err := ctrl.validateSessionRefs(tx, session); err != nil {
			tx.Rollback()
			return mapSessionError(c, err)
		}
		sessions = append(sessions, session)
	}

	if err := tx.Where("session_timetable_id = ?", timetable.TimetableID).
		Delete(&timetablemodel.TimetableSessionModel{}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to clear sessions")
	}
	for _, session := range sessions {
		if err := tx.Create(session).Error; err != nil {
			tx.Rollback()
			return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create session")
		}
	}

	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit replacement")
	}

	return ctrl.respondWithTimetable(c, timetable.TimetableID, false)
}

func (ctrl *TimetableController) Delete(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid timetable id")
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var timetable timetablemodel.TimetableModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&timetable, "timetable_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Timetable not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}

	if err := tx.Where("session_timetable_id = ?", timetable.TimetableID).
		Delete(&timetablemodel.TimetableSessionModel{}).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete sessions")
	}
	if err := tx.Delete(&timetable).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete timetable")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit timetable delete")
	}

	return helper.JsonDeleted(c, "Timetable deleted successfully", fiber.Map{"timetable_id": timetable.TimetableID})
}

// AddSession validates the references and runs the overlap check against
// the timetable's same-day sessions before appending.
func (ctrl *TimetableController) AddSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid timetable id")
	}

	var req timetabledto.SessionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if err := req.Validate(); err != nil {
		return helper.JsonValidationError(c, helper.FieldErrors(err))
	}

	tx := ctrl.DB.Begin()
	if tx.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to start transaction")
	}

	var timetable timetablemodel.TimetableModel
	if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&timetable, "timetable_id = ?", id).Error; err != nil {
		tx.Rollback()
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Timetable not found")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch timetable")
	}

	session, err := req.ToModel(timetable.TimetableID)
	if err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}
	if err := ctrl.validateSessionRefs(tx, session); err != nil {
		tx.Rollback()
		return mapSessionError(c, err)
	}

	var existing []timetablemodel.TimetableSessionModel
	if err := tx.Where("session_timetable_id = ?", timetable.TimetableID).
		Order("session_seq ASC").
		Find(&existing).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to fetch sessions")
	}
	if err := service.CheckConflict(existing, session); err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	}

	if err := tx.Create(session).Error; err != nil {
		tx.Rollback()
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to create session")
	}
	if err := tx.Commit().Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to commit session")
	}

	return helper.JsonCreated(c, "Session added successfully", session)
}

func (ctrl *TimetableController) RemoveSession(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid timetable id")
	}
	sessionID, err := uuid.Parse(c.Params("sessionId"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Invalid session id")
	}

	res := ctrl.DB.Where("session_id = ? AND session_timetable_id = ?", sessionID, id).
		Delete(&timetablemodel.TimetableSessionModel{})
	if res.Error != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to delete session")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, service.ErrSessionNotFound.Error())
	}

	return helper.JsonDeleted(c, "Session removed successfully", fiber.Map{"session_id": sessionID})
}

// validateSessionRefs checks that the course and teacher exist and that
// the teacher actually teaches the course.
func (ctrl *TimetableController) validateSessionRefs(tx *gorm.DB, session *timetablemodel.TimetableSessionModel) error {
	var courseCount int64
	if err := tx.Model(&coursemodel.CourseModel{}).
		Where("course_id = ?", session.SessionCourseID).
		Count(&courseCount).Error; err != nil {
		return err
	}
	if courseCount == 0 {
		return service.ErrUnknownCourse
	}

	var teacher teachermodel.TeacherModel
	if err := tx.First(&teacher, "teacher_id = ?", session.SessionTeacherID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return service.ErrUnknownTeacher
		}
		return err
	}

	if !teacherservice.Teaches(&teacher, session.SessionCourseID.String()) {
		return service.ErrTeacherCourseMismatch
	}
	return nil
}

func mapSessionError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, service.ErrUnknownCourse), errors.Is(err, service.ErrUnknownTeacher):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrTeacherCourseMismatch):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	default:
		return helper.JsonError(c, fiber.StatusInternalServerError, "Session validation failed")
	}
}

func (ctrl *TimetableController) respondWithTimetable(c *fiber.Ctx, id uuid.UUID, created bool) error {
	var timetable timetablemodel.TimetableModel
	if err := ctrl.DB.
		Preload("TimetableSessions", sessionOrder).
		First(&timetable, "timetable_id = ?", id).Error; err != nil {
		return helper.JsonError(c, fiber.StatusInternalServerError, "Failed to reload timetable")
	}
	if created {
		return helper.JsonCreated(c, "Timetable created successfully", timetable)
	}
	return helper.JsonUpdated(c, "Timetable updated successfully", timetable)
}
