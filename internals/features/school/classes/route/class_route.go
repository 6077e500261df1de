package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"schoolku_backend/internals/constants"
	"schoolku_backend/internals/features/school/classes/controller"
	authmw "schoolku_backend/internals/middlewares/auth"
)

// ClassRoutes mounts /classes. Reads are open to any authenticated role,
// mutations are admin only.
func ClassRoutes(api fiber.Router, db *gorm.DB) {
	ctrl := controller.NewClassController(db)
	adminOnly := authmw.OnlyRoles("Only admins can manage classes", constants.RoleAdmin)

	classes := api.Group("/classes")
	classes.Get("/", ctrl.GetAll)
	classes.Get("/:id", ctrl.GetByID)
	classes.Post("/", adminOnly, ctrl.Create)
	classes.Put("/:id", adminOnly, ctrl.Update)
	classes.Delete("/:id", adminOnly, ctrl.Delete)

	classes.Post("/:classId/students/:studentId", adminOnly, ctrl.EnrollStudent)
	classes.Delete("/:classId/students/:studentId", adminOnly, ctrl.UnenrollStudent)
}
