package helper

import (
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// ValidationFieldErrors: validator.ValidationErrors → {field: [tag(param)]}.
// ok=false kalau err bukan error validasi.
func ValidationFieldErrors(err error) (map[string][]string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		msg := fe.Tag()
		if p := fe.Param(); p != "" {
			msg += "=" + p
		}
		name := fe.Field()
		if name != "" {
			name = strings.ToLower(name[:1]) + name[1:]
		}
		out[name] = append(out[name], msg)
	}
	return out, true
}

// FieldErrors: error validasi yang belum ditulis ke response.
// FromFiberError merendernya sebagai envelope 422.
type FieldErrors struct {
	Fields map[string][]string
}

func (e *FieldErrors) Error() string { return "validation failed" }

// NewValidationError: error validator → *FieldErrors, selain itu *fiber.Error 400.
func NewValidationError(err error) error {
	if fields, ok := ValidationFieldErrors(err); ok {
		return &FieldErrors{Fields: fields}
	}
	return fiber.NewError(fiber.StatusBadRequest, err.Error())
}

// ValidationError: 422 kalau error validasi, selain itu 400.
func ValidationError(c *fiber.Ctx, err error) error {
	if fields, ok := ValidationFieldErrors(err); ok {
		return JsonValidationError(c, fields)
	}
	return JsonError(c, fiber.StatusBadRequest, err.Error())
}

// FromFiberError: *fiber.Error / *FieldErrors → envelope standar, selain itu 500.
func FromFiberError(c *fiber.Ctx, err error) error {
	var ve *FieldErrors
	if errors.As(err, &ve) {
		return JsonValidationError(c, ve.Fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	return JsonError(c, fiber.StatusInternalServerError, err.Error())
}
