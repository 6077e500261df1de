package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	classroute "schoolku_backend/internals/features/school/classes/route"
	courseroute "schoolku_backend/internals/features/school/courses/route"
	studentroute "schoolku_backend/internals/features/school/students/route"
	teacherroute "schoolku_backend/internals/features/school/teachers/route"
	timetableroute "schoolku_backend/internals/features/school/timetables/route"
	authroute "schoolku_backend/internals/features/users/auth/route"
	authmw "schoolku_backend/internals/middlewares/auth"
)

var startTime time.Time

// SetupRoutes mounts every feature under /api. Auth routes handle their own
// protection; everything else sits behind the auth middleware.
func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	api := app.Group("/api")

	log.Println("[INFO] Setting up AuthRoutes...")
	authroute.AuthRoutes(api, db)

	protected := api.Group("", authmw.AuthMiddleware(db))

	log.Println("[INFO] Setting up ClassRoutes...")
	classroute.ClassRoutes(protected, db)

	log.Println("[INFO] Setting up StudentRoutes...")
	studentroute.StudentRoutes(protected, db)

	log.Println("[INFO] Setting up TeacherRoutes...")
	teacherroute.TeacherRoutes(protected, db)

	log.Println("[INFO] Setting up CourseRoutes...")
	courseroute.CourseRoutes(protected, db)

	log.Println("[INFO] Setting up TimetableRoutes...")
	timetableroute.TimetableRoutes(protected, db)

	api.Get("/uptime", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"uptime": time.Since(startTime).String(),
		})
	})
}
