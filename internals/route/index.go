// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/configs"
	"attendku_backend/internals/features/attendance/controller"
	database "attendku_backend/internals/databases"
	routeDetails "attendku_backend/internals/route/details"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, store database.Store, ctl *controller.AttendanceController) {
	startTime = time.Now()

	log.Println("[INFO] Setting up BaseRoutes...")
	BaseRoutes(app, store)

	log.Println("[INFO] Mounting Attendance routes...")
	routeDetails.AttendanceRoutes(app, ctl, configs.JWTSecret)
}
