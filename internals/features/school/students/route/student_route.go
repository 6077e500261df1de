package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/students/controller"
	authmw "schoolku_backend/internals/middlewares/auth"
)

// StudentRoutes mounts /students. Mutations are admin only; grades and
// absences can also be written by teachers.
func StudentRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewStudentController(db)
	adminOnly := authmw.OnlyRoles("Only admins can manage students", constants.RoleAdmin)
	staffOnly := authmw.OnlyRoles("Only admins and teachers can record this", constants.StaffRoles...)

	students := api.Group("/students")
	students.Get("/", ctrl.GetAll)
	students.Get("/:id", ctrl.GetByID)
	students.Post("/", adminOnly, ctrl.Create)
	students.Put("/:id", adminOnly, ctrl.Update)
	students.Delete("/:id", adminOnly, ctrl.Delete)

	students.Post("/:id/grades", staffOnly, ctrl.AddGrade)
	students.Post("/:id/absences", staffOnly, ctrl.AddAbsence)
}
