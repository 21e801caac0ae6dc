package helper

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// NewValidator: validator dengan nama field mengikuti tag json.
func NewValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

var tagMessages = map[string]string{
	"required": "wajib diisi",
	"min":      "terlalu pendek",
	"max":      "terlalu panjang",
	"oneof":    "nilai tidak dikenal",
	"gt":       "harus lebih besar dari 0",
	"datetime": "format tanggal tidak valid",
	"email":    "format email tidak valid",
	"numeric":  "harus berupa angka",
	"eqfield":  "tidak sama",
}

// ValidationMessages memetakan validator.ValidationErrors → field → pesan.
func ValidationMessages(err error) (map[string][]string, bool) {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return nil, false
	}
	out := make(map[string][]string, len(ve))
	for _, fe := range ve {
		msg, ok := tagMessages[fe.Tag()]
		if !ok {
			msg = "tidak valid (" + fe.Tag() + ")"
		}
		out[fe.Field()] = append(out[fe.Field()], msg)
	}
	return out, true
}

// FieldErrors: error validasi yang dirender ErrorHandler sebagai 422.
type FieldErrors map[string][]string

func (f FieldErrors) Error() string {
	return "validation failed"
}

// Add menambah pesan untuk satu field.
func (f FieldErrors) Add(field, msg string) {
	f[field] = append(f[field], msg)
}

// AsValidationError: error validator → FieldErrors, error lain → 400.
func AsValidationError(err error) error {
	if fields, ok := ValidationMessages(err); ok {
		return FieldErrors(fields)
	}
	return fiber.NewError(fiber.StatusBadRequest, "Invalid input")
}

// ValidationError: langsung tulis response (422 untuk error validator).
func ValidationError(c *fiber.Ctx, err error) error {
	return FromFiberError(c, AsValidationError(err))
}
