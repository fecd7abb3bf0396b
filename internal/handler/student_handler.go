package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/pantau-go-api/internal/service"
	"github.com/noah-isme/pantau-go-api/internal/utils"
)

// StudentHandler exposes the student status lookup endpoint.
type StudentHandler struct {
	service service.StudentStatusService
	logger  zerolog.Logger
}

// NewStudentHandler builds a student handler instance.
func NewStudentHandler(service service.StudentStatusService, logger zerolog.Logger) *StudentHandler {
	return &StudentHandler{
		service: service,
		logger:  logger.With().Str("component", "student_handler").Logger(),
	}
}

// Register attaches the routes to the provided router.
func (h *StudentHandler) Register(router fiber.Router) {
	router.Get("/student/:id/status", h.status)
}

func (h *StudentHandler) status(c *fiber.Ctx) error {
	studentID := c.Params("id")
	if studentID == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	response, err := h.service.Get(c.UserContext(), studentID)
	if err != nil {
		if errors.Is(err, service.ErrStudentNotFound) {
			return utils.SendError(c, fiber.StatusNotFound, "Student not found")
		}
		h.logger.Error().Err(err).Str("student_id", studentID).Msg("status lookup failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Server error")
	}

	return utils.SendOK(c, response)
}
