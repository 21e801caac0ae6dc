package helper

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
)

// FromFiberError mengubah error (biasanya *fiber.Error dari service)
// menjadi response JSON konsisten via JsonError.
// Jika bukan *fiber.Error, fallback ke 500 tanpa membocorkan pesan internal.
func FromFiberError(c *fiber.Ctx, err error) error {
	var fields FieldErrors
	if errors.As(err, &fields) {
		return JsonValidationError(c, fields)
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return JsonError(c, fe.Code, fe.Message)
	}
	log.Printf("[ERROR] %s %s: %v", c.Method(), c.OriginalURL(), err)
	return JsonError(c, fiber.StatusInternalServerError, "Internal Server Error")
}

// ErrorHandler untuk fiber.Config: semua error handler berujung di sini.
func ErrorHandler(c *fiber.Ctx, err error) error {
	return FromFiberError(c, err)
}
