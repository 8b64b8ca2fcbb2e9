package details

import (
	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/features/attendance/controller"
	attendanceRoute "attendku_backend/internals/features/attendance/route"
	rateLimiter "attendku_backend/internals/middlewares"
	authMiddleware "attendku_backend/internals/middlewares/auth"
)

func AttendanceRoutes(app *fiber.App, ctl *controller.AttendanceController, jwtSecret string) {
	api := app.Group("/api",
		rateLimiter.GlobalRateLimiter(),
	)

	// 👤 Prefix user: /api/u/... (JWT opsional, lihat AuthJWT)
	userGroup := api.Group("/u",
		authMiddleware.AuthJWT(authMiddleware.AuthJWTOpts{
			Secret:              jwtSecret,
			AllowCookieFallback: true,
		}),
	)
	userGroup.Use("/transfer", rateLimiter.TransferRateLimiter())
	attendanceRoute.AttendanceUserRoutes(userGroup, ctl)
}
