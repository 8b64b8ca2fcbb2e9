// file: internals/features/attendance/controller/stats_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	svc "attendku_backend/internals/features/attendance/service"
	helper "attendku_backend/internals/helpers"
)

// GET /api/u/stats: laporan semua mata kuliah
func (ctl *AttendanceController) AllStats(c *fiber.Ctx) error {
	reports := svc.BuildAllReports(ctl.Repo.Snapshot(), ctl.today(c))
	return helper.JsonList(c, "ok", reports, nil)
}

// GET /api/u/stats/:subjectId
func (ctl *AttendanceController) SubjectStats(c *fiber.Ctx) error {
	snap := ctl.Repo.Snapshot()
	sub, ok := snap.FindSubject(svc.NormalizeSubjectID(c.Params("subjectId")))
	if !ok {
		return writeDomainError(c, svc.ErrUnknownSubject)
	}
	return helper.JsonOK(c, "ok", svc.BuildSubjectReport(sub, snap, ctl.today(c)))
}

// GET /api/u/stats/:subjectId/projection: jumlah sesi kumulatif per minggu
func (ctl *AttendanceController) SubjectProjection(c *fiber.Ctx) error {
	snap := ctl.Repo.Snapshot()
	sub, ok := snap.FindSubject(svc.NormalizeSubjectID(c.Params("subjectId")))
	if !ok {
		return writeDomainError(c, svc.ErrUnknownSubject)
	}
	set := snap.Settings
	total := svc.ProjectSemesterCount(sub.ID, snap.Slots, snap.Overrides, set.SemesterStartDate, set.SemesterEnd(), nil)
	return helper.JsonOK(c, "ok", fiber.Map{
		"subjectId":      sub.ID,
		"semesterStart":  set.SemesterStartDate,
		"semesterEnd":    set.SemesterEnd(),
		"totalProjected": total,
		"weekly":         svc.WeeklyProjection(sub.ID, snap),
	})
}
