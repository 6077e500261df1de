package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/teachers/controller"
	authmw "schoolku_backend/internals/middlewares/auth"
)

// TeacherRoutes mounts /teachers. Mutations are admin only.
func TeacherRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewTeacherController(db)
	adminOnly := authmw.OnlyRoles("Only admins can manage teachers", constants.RoleAdmin)

	teachers := api.Group("/teachers")
	teachers.Get("/", ctrl.GetAll)
	teachers.Get("/:id", ctrl.GetByID)
	teachers.Post("/", adminOnly, ctrl.Create)
	teachers.Put("/:id", adminOnly, ctrl.Update)
	teachers.Delete("/:id", adminOnly, ctrl.Delete)

	teachers.Post("/:teacherId/courses/:courseId", adminOnly, ctrl.AssignCourse)
	teachers.Delete("/:teacherId/courses/:courseId", adminOnly, ctrl.UnassignCourse)
}
