// file: internals/features/attendance/dto/validator.go
package dto

import (
	"github.com/go-playground/validator/v10"

	m "attendku_backend/internals/features/attendance/model"
	"attendku_backend/internals/helpers/dbtime"
)

// NewValidator: validator + tag custom hhmm, ymd, unmarked_policy.
func NewValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return dbtime.IsValidHHMM(fl.Field().String())
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		return dbtime.IsValidDate(fl.Field().String())
	})
	_ = v.RegisterValidation("unmarked_policy", func(fl validator.FieldLevel) bool {
		_, ok := m.ParseUnmarkedPolicy(fl.Field().String())
		return ok
	})
	return v
}
