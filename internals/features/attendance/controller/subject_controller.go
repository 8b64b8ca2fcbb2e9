// file: internals/features/attendance/controller/subject_controller.go
package controller

import (
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/features/attendance/dto"
	m "attendku_backend/internals/features/attendance/model"
	svc "attendku_backend/internals/features/attendance/service"
	helper "attendku_backend/internals/helpers"
)

// GET /api/u/subjects
func (ctl *AttendanceController) ListSubjects(c *fiber.Ctx) error {
	subs := ctl.Repo.Snapshot().Subjects
	sort.SliceStable(subs, func(i, j int) bool { return subs[i].ID < subs[j].ID })
	return helper.JsonList(c, "ok", subs, nil)
}

// GET /api/u/subjects/:id: subject + jadwal mingguannya
func (ctl *AttendanceController) GetSubject(c *fiber.Ctx) error {
	snap := ctl.Repo.Snapshot()
	sub, ok := snap.FindSubject(svc.NormalizeSubjectID(c.Params("id")))
	if !ok {
		return writeDomainError(c, svc.ErrUnknownSubject)
	}
	slots := make([]m.TimetableSlot, 0)
	for _, sl := range snap.Slots {
		if sl.SubjectID == sub.ID {
			slots = append(slots, sl)
		}
	}
	return helper.JsonOK(c, "ok", fiber.Map{"subject": sub, "slots": slots})
}

// POST /api/u/subjects
func (ctl *AttendanceController) CreateSubject(c *fiber.Ctx) error {
	var req dto.CreateSubjectRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	sub, err := ctl.Repo.AddSubject(reqCtx(c), req.ToInput())
	if err != nil {
		return writeDomainError(c, err)
	}
	log.Printf("[SUBJECT] ➕ %s (%s)", sub.ID, sub.Name)
	return helper.JsonCreated(c, "Mata kuliah ditambahkan", sub)
}

// PATCH /api/u/subjects/:id
func (ctl *AttendanceController) PatchSubject(c *fiber.Ctx) error {
	var req dto.PatchSubjectRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	sub, err := ctl.Repo.UpdateSubject(reqCtx(c), c.Params("id"), req.ToPatch())
	if err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Mata kuliah diperbarui", sub)
}

// DELETE /api/u/subjects/:id: ikut hapus slot, override & log
func (ctl *AttendanceController) DeleteSubject(c *fiber.Ctx) error {
	id := svc.NormalizeSubjectID(c.Params("id"))
	if err := ctl.Repo.DeleteSubject(reqCtx(c), id); err != nil {
		return writeDomainError(c, err)
	}
	log.Printf("[SUBJECT] 🗑️ %s dihapus beserta jadwal & presensinya", id)
	return helper.JsonDeleted(c, "Mata kuliah dihapus", fiber.Map{"id": id})
}
