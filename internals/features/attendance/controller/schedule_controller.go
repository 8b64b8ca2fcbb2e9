// file: internals/features/attendance/controller/schedule_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	svc "attendku_backend/internals/features/attendance/service"
	helper "attendku_backend/internals/helpers"
)

// GET /api/u/schedule/:date: tampilan harian (libur, batas kuliah, log)
// :date boleh "today".
func (ctl *AttendanceController) DaySchedule(c *fiber.Ctx) error {
	date, ok := ctl.dateParam(c, "date")
	if !ok {
		return writeDomainError(c, svc.ErrInvalidDate)
	}
	return helper.JsonOK(c, "ok", svc.DaySchedule(date, ctl.Repo.Snapshot()))
}

// GET /api/u/schedule/:date/effective: hasil resolver mentah (tanpa libur)
func (ctl *AttendanceController) EffectiveSlots(c *fiber.Ctx) error {
	date, ok := ctl.dateParam(c, "date")
	if !ok {
		return writeDomainError(c, svc.ErrInvalidDate)
	}
	snap := ctl.Repo.Snapshot()
	return helper.JsonList(c, "ok", svc.GetEffectiveSlots(date, snap.Slots, snap.Overrides), nil)
}
