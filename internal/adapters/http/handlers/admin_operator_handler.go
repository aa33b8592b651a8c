package handlers

import (
	"errors"

	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/core/services"
	"shoplocal-api/internal/pkg/pagination"
	"shoplocal-api/internal/pkg/password"
	"shoplocal-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// AdminOperatorHandler handles back-office operator management
type AdminOperatorHandler struct {
	operatorService *services.OperatorService
}

// NewAdminOperatorHandler creates a new admin operator handler
func NewAdminOperatorHandler(operatorService *services.OperatorService) *AdminOperatorHandler {
	return &AdminOperatorHandler{operatorService: operatorService}
}

// List lists operators with pagination
func (h *AdminOperatorHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	operators, total, err := h.operatorService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Success(c, "Operators retrieved successfully", fiber.Map{
		"operators": operators,
		"meta":      pagination.GetMeta(params, total),
	})
}

// Create registers a new operator
func (h *AdminOperatorHandler) Create(c *fiber.Ctx) error {
	var req services.CreateOperatorInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Phone == "" {
		return response.BadRequest(c, "Phone is required")
	}
	if !password.ValidatePassword(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	operator, err := h.operatorService.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Phone already registered")
		}
		return response.Internal(c, err)
	}

	return response.Created(c, "Operator created successfully", fiber.Map{"operator": operator})
}

// SetActive toggles an operator's active flag (soft deactivation)
func (h *AdminOperatorHandler) SetActive(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid operator id")
	}

	var req ActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.operatorService.SetActive(c.Context(), id, req.Active); err != nil {
		if errors.Is(err, domain.ErrOperatorNotFound) {
			return response.NotFound(c, "Operator not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Operator updated successfully", nil)
}
