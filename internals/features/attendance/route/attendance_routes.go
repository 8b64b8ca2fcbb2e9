// file: internals/features/attendance/route/attendance_routes.go
package route

import (
	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/features/attendance/controller"
)

// AttendanceUserRoutes: semua endpoint tracker di bawah prefix user.
// Contoh mount dari caller:
//
//	user := app.Group("/api/u")
//	route.AttendanceUserRoutes(user, ctl)
func AttendanceUserRoutes(r fiber.Router, ctl *controller.AttendanceController) {
	subjects := r.Group("/subjects")
	subjects.Get("/", ctl.ListSubjects)
	subjects.Post("/", ctl.CreateSubject)
	subjects.Get("/:id", ctl.GetSubject)
	subjects.Patch("/:id", ctl.PatchSubject)
	subjects.Delete("/:id", ctl.DeleteSubject)

	slots := r.Group("/slots")
	slots.Get("/", ctl.ListSlots)
	slots.Post("/", ctl.CreateSlot)
	slots.Patch("/:id", ctl.PatchSlot)
	slots.Delete("/:id", ctl.DeleteSlot)

	overrides := r.Group("/overrides")
	overrides.Get("/", ctl.ListOverrides)
	overrides.Post("/", ctl.CreateOverride)
	overrides.Post("/cancel", ctl.CancelSession)
	overrides.Post("/reschedule", ctl.Reschedule)
	overrides.Delete("/:id", ctl.DeleteOverride)

	holidays := r.Group("/holidays")
	holidays.Get("/", ctl.ListHolidays)
	holidays.Post("/", ctl.CreateHoliday)
	holidays.Delete("/:date", ctl.DeleteHoliday)

	schedule := r.Group("/schedule")
	schedule.Get("/:date", ctl.DaySchedule)
	schedule.Get("/:date/effective", ctl.EffectiveSlots)

	att := r.Group("/attendance")
	att.Get("/", ctl.ListAttendance)
	att.Post("/mark", ctl.MarkAttendance)
	att.Post("/sweep", ctl.Sweep)
	att.Delete("/:slotId/:date", ctl.UnmarkAttendance)

	stats := r.Group("/stats")
	stats.Get("/", ctl.AllStats)
	stats.Get("/:subjectId", ctl.SubjectStats)
	stats.Get("/:subjectId/projection", ctl.SubjectProjection)

	r.Get("/settings", ctl.GetSettings)
	r.Put("/settings", ctl.UpdateSettings)

	transfer := r.Group("/transfer")
	transfer.Get("/export", ctl.Export)
	transfer.Post("/import", ctl.Import)
	transfer.Post("/backup", ctl.Backup)
}
