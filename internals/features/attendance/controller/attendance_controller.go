// file: internals/features/attendance/controller/attendance_controller.go
package controller

import (
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/features/attendance/dto"
	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/features/attendance/metrics"
	"attendku_backend/internals/features/attendance/scheduler"
	svc "attendku_backend/internals/features/attendance/service"
	helper "attendku_backend/internals/helpers"
)

// GET /api/u/attendance?subject_id=&from=&to=&status=&source=&page=&per_page=
// Terbaru dulu.
func (ctl *AttendanceController) ListAttendance(c *fiber.Ctx) error {
	var q dto.ListAttendanceQuery
	if err := c.QueryParser(&q); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Query tidak valid")
	}
	q.SubjectID = svc.NormalizeSubjectID(q.SubjectID)
	if err := ctl.Validate.Struct(q); err != nil {
		return helper.ValidationError(c, err)
	}

	logs := make([]m.AttendanceLog, 0)
	for _, l := range ctl.Repo.Snapshot().Logs {
		if q.Match(l) {
			logs = append(logs, l)
		}
	}
	sort.SliceStable(logs, func(i, j int) bool {
		if logs[i].Date != logs[j].Date {
			return logs[i].Date > logs[j].Date
		}
		return logs[i].SlotID < logs[j].SlotID
	})

	page, meta := helper.Paginate(logs, helper.ResolvePaging(c, 50, 500))
	return helper.JsonList(c, "ok", page, &meta)
}

// POST /api/u/attendance/mark: timpa log yang ada (last write wins)
func (ctl *AttendanceController) MarkAttendance(c *fiber.Ctx) error {
	var req dto.MarkAttendanceRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	l, err := ctl.Repo.MarkAttendance(reqCtx(c), req.ToInput())
	if err != nil {
		return writeDomainError(c, err)
	}
	metrics.AttendanceMarks.WithLabelValues(string(l.Source), string(l.Status)).Inc()
	log.Printf("[ATTENDANCE] ✅ %s %s → %s", l.SubjectID, l.Key(), l.Status)
	return helper.JsonOK(c, "Presensi disimpan", l)
}

// DELETE /api/u/attendance/:slotId/:date
func (ctl *AttendanceController) UnmarkAttendance(c *fiber.Ctx) error {
	date, ok := ctl.dateParam(c, "date")
	if !ok {
		return writeDomainError(c, svc.ErrInvalidDate)
	}
	key := m.LogKey{SlotID: c.Params("slotId"), Date: date}
	if err := ctl.Repo.UnmarkAttendance(reqCtx(c), key); err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonDeleted(c, "Presensi dihapus", fiber.Map{"id": key.String()})
}

// POST /api/u/attendance/sweep[?async=true]: sinyal "app kembali ke foreground".
// async → cukup bangunkan loop scheduler, balas 202.
func (ctl *AttendanceController) Sweep(c *fiber.Ctx) error {
	if ctl.Sweeper == nil {
		return helper.JsonError(c, fiber.StatusServiceUnavailable, "Auto-attendance tidak aktif")
	}
	if c.QueryBool("async") {
		ctl.Sweeper.Trigger(scheduler.TriggerForeground)
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"success": true,
			"message": "Sweep dijadwalkan",
			"data":    nil,
		})
	}
	added, err := ctl.Sweeper.RunOnce(reqCtx(c), scheduler.TriggerForeground)
	if err != nil {
		return writeDomainError(c, err)
	}
	if added == nil {
		added = []m.AttendanceLog{}
	}
	return helper.JsonOK(c, "Sweep selesai", fiber.Map{
		"marked": len(added),
		"logs":   added,
	})
}
