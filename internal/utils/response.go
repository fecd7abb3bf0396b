package utils

import "github.com/gofiber/fiber/v2"

// ErrorResponse is the uniform error body of the API: a single error string,
// never internal detail.
type ErrorResponse struct {
	Error string `json:"error"`
}

// SendError sends an error JSON response with the given status code.
func SendError(c *fiber.Ctx, status int, message string) error {
	if message == "" {
		message = "Server error"
	}

	return c.Status(status).JSON(ErrorResponse{Error: message})
}

// SendOK sends the payload with a 200 status.
func SendOK(c *fiber.Ctx, payload interface{}) error {
	return c.Status(fiber.StatusOK).JSON(payload)
}
