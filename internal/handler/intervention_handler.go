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

// InterventionHandler exposes the assignment and completion endpoints used
// by the external mentor workflow.
type InterventionHandler struct {
	service service.InterventionService
	logger  zerolog.Logger
}

// NewInterventionHandler builds an intervention handler instance.
func NewInterventionHandler(service service.InterventionService, logger zerolog.Logger) *InterventionHandler {
	return &InterventionHandler{
		service: service,
		logger:  logger.With().Str("component", "intervention_handler").Logger(),
	}
}

// Register attaches the routes to the provided router.
func (h *InterventionHandler) Register(router fiber.Router) {
	router.Post("/assign-intervention", h.assign)
	router.Post("/mark-complete", h.complete)
}

func (h *InterventionHandler) assign(c *fiber.Ctx) error {
	var payload dto.AssignInterventionRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	intervention, err := h.service.Assign(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendOK(c, dto.AssignInterventionResponse{OK: true, Intervention: intervention})
}

func (h *InterventionHandler) complete(c *fiber.Ctx) error {
	var payload dto.MarkCompleteRequest
	if err := c.BodyParser(&payload); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid payload")
	}

	response, err := h.service.Complete(c.UserContext(), payload)
	if err != nil {
		return h.handleError(c, err)
	}

	return utils.SendOK(c, response)
}

func (h *InterventionHandler) handleError(c *fiber.Ctx, err error) error {
	var validationErrors validator.ValidationErrors
	switch {
	case errors.Is(err, service.ErrInterventionNotFound):
		return utils.SendError(c, fiber.StatusNotFound, "Intervention not found")
	case errors.Is(err, service.ErrEmptyTask), errors.As(err, &validationErrors):
		return utils.SendError(c, fiber.StatusBadRequest, "Invalid payload")
	default:
		h.logger.Error().Err(err).Msg("intervention operation failed")
		return utils.SendError(c, fiber.StatusInternalServerError, "Server error")
	}
}
