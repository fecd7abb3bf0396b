package handler

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/noah-isme/pantau-go-api/internal/dto"
	"github.com/noah-isme/pantau-go-api/internal/service"
	"github.com/noah-isme/pantau-go-api/internal/utils"
)

// CheckInHandler exposes the daily check-in endpoint.
type CheckInHandler struct {
	service service.CheckInService
	logger  zerolog.Logger
}

// NewCheckInHandler builds a check-in handler instance.
func NewCheckInHandler(service service.CheckInService, logger zerolog.Logger) *CheckInHandler {
	return &CheckInHandler{
		service: service,
		logger:  logger.With().Str("component", "checkin_handler").Logger(),
	}
}

// Register attaches the routes to the provided router.
func (h *CheckInHandler) Register(router fiber.Router) {
	router.Post("/daily-checkin", h.record)
}

func (h *CheckInHandler) record(c *fiber.Ctx) error {
	var payload dto.CheckInRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	response, err := h.service.Record(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendOK(c, response)
}

func (h *CheckInHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	h.logger.Error().Err(err).Msg("check-in failed with internal error")
	return utils.SendError(c, fiber.StatusInternalServerError, "Server error")
}
