// file: internals/features/attendance/controller/controller.go
package controller

import (
	"context"
	"errors"
	"log"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"attendku_backend/internals/constants"
	"attendku_backend/internals/features/attendance/dto"
	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/features/attendance/metrics"
	repo "attendku_backend/internals/features/attendance/repository"
	svc "attendku_backend/internals/features/attendance/service"
	database "attendku_backend/internals/databases"
	helper "attendku_backend/internals/helpers"
	"attendku_backend/internals/helpers/dbtime"
	"attendku_backend/internals/helpers/oss"
)

// Sweeper: runner auto-attendance (scheduler.AutoAttendance).
type Sweeper interface {
	RunOnce(ctx context.Context, trigger string) ([]m.AttendanceLog, error)
	Trigger(reason string)
}

/* =======================================================
   CONTROLLER
   ======================================================= */

type AttendanceController struct {
	Repo     *repo.StateRepository
	Validate *validator.Validate
	Sweeper  Sweeper
	Storage  oss.Uploader // nil = backup remote mati
}

func NewAttendanceController(r *repo.StateRepository, v *validator.Validate, sw Sweeper, backup oss.Uploader) *AttendanceController {
	if v == nil {
		v = dto.NewValidator()
	}
	return &AttendanceController{Repo: r, Validate: v, Sweeper: sw, Storage: backup}
}

// ambil context standar (timeout dari middleware request-id)
func reqCtx(c *fiber.Ctx) context.Context {
	if uc := c.UserContext(); uc != nil {
		return uc
	}
	return context.Background()
}

// today "YYYY-MM-DD" menurut jam repo di zona request
func (ctl *AttendanceController) today(c *fiber.Ctx) string {
	return dbtime.FormatLocalDate(ctl.Repo.Now().In(dbtime.GetLocation(c)))
}

// bind: parse body + validasi tag. Error belum ditulis; handler wajib
// me-return-nya apa adanya supaya dirender oleh helper.FromFiberError.
func (ctl *AttendanceController) bind(c *fiber.Ctx, out any) error {
	if err := c.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Body tidak valid")
	}
	if err := ctl.Validate.Struct(out); err != nil {
		return helper.NewValidationError(err)
	}
	return nil
}

// dateParam: "YYYY-MM-DD" atau "today"
func (ctl *AttendanceController) dateParam(c *fiber.Ctx, name string) (string, bool) {
	d := c.Params(name)
	if d == "today" {
		d = ctl.today(c)
	}
	return d, dbtime.IsValidDate(d)
}

// writeDomainError: sentinel service/repo → status HTTP.
func writeDomainError(c *fiber.Ctx, err error) error {
	var pe *repo.PersistError
	switch {
	case errors.As(err, &pe):
		metrics.PersistFailures.Inc()
		log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
		if errors.Is(err, database.ErrStoreUnavailable) {
			return helper.JsonError(c, fiber.StatusServiceUnavailable, constants.MsgPersistFailed)
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, constants.MsgPersistFailed)
	case errors.Is(err, svc.ErrNotFound), errors.Is(err, svc.ErrUnknownSubject):
		return helper.JsonError(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, svc.ErrDuplicateSubject), errors.Is(err, svc.ErrSlotConflict), errors.Is(err, svc.ErrConflict):
		return helper.JsonError(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, svc.ErrInvalidInput), errors.Is(err, svc.ErrInvalidDayOfWeek),
		errors.Is(err, svc.ErrInvalidTime), errors.Is(err, svc.ErrInvalidDate),
		errors.Is(err, svc.ErrEndBeforeStart):
		return helper.JsonError(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return helper.JsonError(c, fiber.StatusGatewayTimeout, "Permintaan melebihi batas waktu")
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.Path(), err)
	return helper.JsonError(c, fiber.StatusInternalServerError, "")
}
