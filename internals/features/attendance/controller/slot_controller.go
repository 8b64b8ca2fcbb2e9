// file: internals/features/attendance/controller/slot_controller.go
package controller

import (
	"sort"

	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/features/attendance/dto"
	m "attendku_backend/internals/features/attendance/model"
	svc "attendku_backend/internals/features/attendance/service"
	helper "attendku_backend/internals/helpers"
)

/* =========================
   Timetable slots
========================= */

// GET /api/u/slots?subject_id=&day=
func (ctl *AttendanceController) ListSlots(c *fiber.Ctx) error {
	subjectID := svc.NormalizeSubjectID(c.Query("subject_id"))
	day := c.QueryInt("day", -1)

	out := make([]m.TimetableSlot, 0)
	for _, sl := range ctl.Repo.Snapshot().Slots {
		if subjectID != "" && sl.SubjectID != subjectID {
			continue
		}
		if day >= 0 && sl.DayOfWeek != day {
			continue
		}
		out = append(out, sl)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].DayOfWeek != out[j].DayOfWeek {
			return out[i].DayOfWeek < out[j].DayOfWeek
		}
		return out[i].StartTime < out[j].StartTime
	})
	return helper.JsonList(c, "ok", out, nil)
}

// POST /api/u/slots
func (ctl *AttendanceController) CreateSlot(c *fiber.Ctx) error {
	var req dto.CreateSlotRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	sl, err := ctl.Repo.AddSlot(reqCtx(c), req.ToInput())
	if err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonCreated(c, "Jadwal ditambahkan", sl)
}

// PATCH /api/u/slots/:id
func (ctl *AttendanceController) PatchSlot(c *fiber.Ctx) error {
	var req dto.PatchSlotRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	sl, err := ctl.Repo.UpdateSlot(reqCtx(c), c.Params("id"), req.ToPatch())
	if err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Jadwal diperbarui", sl)
}

// DELETE /api/u/slots/:id
func (ctl *AttendanceController) DeleteSlot(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ctl.Repo.DeleteSlot(reqCtx(c), id); err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Jadwal dihapus", fiber.Map{"id": id})
}

/* =========================
   Overrides
========================= */

// GET /api/u/overrides?from=&to=
func (ctl *AttendanceController) ListOverrides(c *fiber.Ctx) error {
	from, to := c.Query("from"), c.Query("to")
	out := make([]m.SlotOverride, 0)
	for _, o := range ctl.Repo.Snapshot().Overrides {
		if (from != "" && o.Date < from) || (to != "" && o.Date > to) {
			continue
		}
		out = append(out, o)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return helper.JsonList(c, "ok", out, nil)
}

// POST /api/u/overrides
func (ctl *AttendanceController) CreateOverride(c *fiber.Ctx) error {
	var req dto.CreateOverrideRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	o, err := ctl.Repo.AddOverride(reqCtx(c), req.ToModel())
	if err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonCreated(c, "Perubahan jadwal disimpan", o)
}

// POST /api/u/overrides/cancel
func (ctl *AttendanceController) CancelSession(c *fiber.Ctx) error {
	var req dto.CancelSessionRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	o, err := ctl.Repo.AddOverride(reqCtx(c), req.ToModel())
	if err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonCreated(c, "Kelas dibatalkan", o)
}

// POST /api/u/overrides/reschedule
func (ctl *AttendanceController) Reschedule(c *fiber.Ctx) error {
	var req dto.RescheduleRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	cancelled, moved, err := ctl.Repo.Reschedule(reqCtx(c), req.ToInput())
	if err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonCreated(c, "Kelas dipindahkan", fiber.Map{
		"cancelled": cancelled,
		"added":     moved,
	})
}

// DELETE /api/u/overrides/:id
func (ctl *AttendanceController) DeleteOverride(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := ctl.Repo.DeleteOverride(reqCtx(c), id); err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Perubahan jadwal dihapus", fiber.Map{"id": id})
}

/* =========================
   Holidays
========================= */

func (ctl *AttendanceController) ListHolidays(c *fiber.Ctx) error {
	return helper.JsonList(c, "ok", ctl.Repo.Snapshot().Holidays, nil)
}

// POST /api/u/holidays (tanggal sama → nama ditimpa)
func (ctl *AttendanceController) CreateHoliday(c *fiber.Ctx) error {
	var req dto.CreateHolidayRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	h, err := ctl.Repo.AddHoliday(reqCtx(c), req.Date, req.Name)
	if err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonCreated(c, "Hari libur disimpan", h)
}

// DELETE /api/u/holidays/:date
func (ctl *AttendanceController) DeleteHoliday(c *fiber.Ctx) error {
	date, ok := ctl.dateParam(c, "date")
	if !ok {
		return writeDomainError(c, svc.ErrInvalidDate)
	}
	if err := ctl.Repo.RemoveHoliday(reqCtx(c), date); err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Hari libur dihapus", fiber.Map{"date": date})
}
