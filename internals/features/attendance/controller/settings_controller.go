// file: internals/features/attendance/controller/settings_controller.go
package controller

import (
	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/features/attendance/dto"
	helper "attendku_backend/internals/helpers"
)

func (ctl *AttendanceController) GetSettings(c *fiber.Ctx) error {
	set := ctl.Repo.Snapshot().Settings
	return helper.JsonOK(c, "ok", fiber.Map{
		"settings":    set,
		"semesterEnd": set.SemesterEnd(),
	})
}

// PUT /api/u/settings: partial, field kosong tidak diubah
func (ctl *AttendanceController) UpdateSettings(c *fiber.Ctx) error {
	var req dto.UpdateSettingsRequest
	if err := ctl.bind(c, &req); err != nil {
		return err
	}
	set, err := ctl.Repo.UpdateSettings(reqCtx(c), req.ToPatch())
	if err != nil {
		return writeDomainError(c, err)
	}
	return helper.JsonUpdated(c, "Pengaturan disimpan", set)
}
