package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/courses/controller"
	authmw "schoolku_backend/internals/middlewares/auth"
)

// CourseRoutes mounts /courses. Create and delete are admin only; teachers
// may also edit their courses.
func CourseRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewCourseController(db)
	adminOnly := authmw.OnlyRoles("Only admins can manage courses", constants.RoleAdmin)
	staffOnly := authmw.OnlyRoles("Only admins and teachers can edit courses", constants.StaffRoles...)

	courses := api.Group("/courses")
	courses.Get("/", ctrl.GetAll)
	courses.Get("/:id", ctrl.GetByID)
	courses.Post("/", adminOnly, ctrl.Create)
	courses.Put("/:id", staffOnly, ctrl.Update)
	courses.Delete("/:id", adminOnly, ctrl.Delete)
}
