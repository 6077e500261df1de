package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/timetables/controller"
	authmw "schoolku_backend/internals/middlewares/auth"
)

// TimetableRoutes mounts /timetables. Mutations are admin only.
func TimetableRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTimetableController(db)
	adminOnly := authmw.OnlyRoles("Only admins can manage timetables", constants.RoleAdmin)

	timetables := api.Group("/timetables")
	timetables.Get("/", ctrl.GetAll)
	timetables.Get("/class/:classId", ctrl.GetByClass)
	timetables.Get("/class/:classId/week/:week/year/:year", ctrl.GetByClassWeekYear)
	timetables.Get("/:id", ctrl.GetByID)
	timetables.Post("/", adminOnly, ctrl.Create)
	timetables.Put("/:id", adminOnly, ctrl.Replace)
	timetables.Delete("/:id", adminOnly, ctrl.Delete)

	timetables.Post("/:id/sessions", adminOnly, ctrl.AddSession)
	timetables.Delete("/:id/sessions/:sessionId", adminOnly, ctrl.RemoveSession)
}
