// file: internals/features/attendance/controller/transfer_controller.go
package controller

import (
	"errors"
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"

	m "attendku_backend/internals/features/attendance/model"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/oss"
)

// GET /api/u/transfer/export: bundle JSON (bisa diunduh sebagai file)
func (ctl *AttendanceController) Export(c *fiber.Ctx) error {
	b := ctl.Repo.Export()
	if c.QueryBool("download") {
		c.Set(fiber.HeaderContentDisposition,
			fmt.Sprintf(`attachment; filename="attendku-%s.json"`, b.ExportedAt.Format("2006-01-02")))
		return c.JSON(b)
	}
	return helper.JsonOK(c, "ok", b)
}

// POST /api/u/transfer/import: ganti seluruh state dengan bundle
func (ctl *AttendanceController) Import(c *fiber.Ctx) error {
	var b m.ExportBundle
	if err := c.BodyParser(&b); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "File impor tidak valid")
	}
	snap, err := ctl.Repo.Import(reqCtx(c), b)
	if err != nil {
		return writeDomainError(c, err)
	}
	log.Printf("[TRANSFER] 📥 impor: %d mk, %d jadwal, %d log", len(snap.Subjects), len(snap.Slots), len(snap.Logs))
	return helper.JsonOK(c, "Data berhasil diimpor", fiber.Map{
		"subjects":       len(snap.Subjects),
		"slots":          len(snap.Slots),
		"attendanceLogs": len(snap.Logs),
		"slotOverrides":  len(snap.Overrides),
		"holidays":       len(snap.Holidays),
	})
}

// POST /api/u/transfer/backup: export lalu upload ke B2
func (ctl *AttendanceController) Backup(c *fiber.Ctx) error {
	b := ctl.Repo.Export()
	key := oss.BackupKey(b.ExportedAt)
	url, size, err := oss.UploadJSON(reqCtx(c), ctl.Storage, key, b)
	if err != nil {
		if errors.Is(err, oss.ErrNotConfigured) {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, err.Error())
		}
		log.Printf("[TRANSFER] ❌ backup gagal: %v", err)
		return helper.JsonError(c, fiber.StatusBadGateway, "Gagal mengunggah backup")
	}
	log.Printf("[TRANSFER] ☁️ backup %s (%d bytes)", key, size)
	return helper.JsonCreated(c, "Backup tersimpan", fiber.Map{"key": key, "url": url, "size": size})
}
