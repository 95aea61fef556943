package api

import (
	"fmt"
	"log"

	"github.com/gofiber/fiber/v2"
)

// Error codes
const (
	CodeInvalidFolder = "invalid_folder"
	CodeInvalidURL    = "invalid_url"
	CodeListFailed    = "list_failed"
	CodeTimeout       = "thumbnail_timeout"
	CodeSampleFailed  = "sample_failed"
)

// APIError carries a client-facing message and the underlying cause
type APIError struct {
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

var (
	ErrInvalidFolder = func(err error) *APIError {
		return &APIError{Code: CodeInvalidFolder, Message: "Invalid folder name", Err: err}
	}
	ErrInvalidURL = func(err error) *APIError {
		return &APIError{Code: CodeInvalidURL, Message: "Invalid media URL", Err: err}
	}
	ErrListFailed = func(err error) *APIError {
		return &APIError{Code: CodeListFailed, Message: "S3 fetch failed", Err: err}
	}
	ErrTimeout = func(err error) *APIError {
		return &APIError{Code: CodeTimeout, Message: "Thumbnail generation timed out", Err: err}
	}
	ErrSampleFailed = func(err error) *APIError {
		return &APIError{Code: CodeSampleFailed, Message: "Thumbnail generation failed", Err: err}
	}
)

// HandleError writes err as {"error": message} with a status matching its code
func HandleError(c *fiber.Ctx, err error) error {
	if err == nil {
		return nil
	}

	if ae, ok := err.(*APIError); ok {
		if ae.Err != nil {
			log.Printf("API error [%s]: %v", ae.Code, ae.Err)
		}

		var status int
		switch ae.Code {
		case CodeInvalidFolder, CodeInvalidURL:
			status = fiber.StatusBadRequest
		case CodeTimeout:
			status = fiber.StatusGatewayTimeout
		case CodeSampleFailed:
			status = fiber.StatusBadGateway
		default:
			status = fiber.StatusInternalServerError
		}

		return c.Status(status).JSON(fiber.Map{"error": ae.Message})
	}

	log.Printf("Unexpected error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Internal server error"})
}
