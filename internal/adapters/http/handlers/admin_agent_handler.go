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

// AdminAgentHandler handles back-office agent management
type AdminAgentHandler struct {
	agentService *services.AgentService
}

// NewAdminAgentHandler creates a new admin agent handler
func NewAdminAgentHandler(agentService *services.AgentService) *AdminAgentHandler {
	return &AdminAgentHandler{agentService: agentService}
}

// List lists agents with pagination
func (h *AdminAgentHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	agents, total, err := h.agentService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Success(c, "Agents retrieved successfully", fiber.Map{
		"agents": agents,
		"meta":   pagination.GetMeta(params, total),
	})
}

// Create registers a new agent
func (h *AdminAgentHandler) Create(c *fiber.Ctx) error {
	var req services.CreateAgentInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Name is required")
	}
	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if !password.ValidatePassword(req.Password) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	agent, err := h.agentService.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateEntry) {
			return response.Conflict(c, "Email already registered")
		}
		return response.Internal(c, err)
	}

	return response.Created(c, "Agent created successfully", fiber.Map{"agent": agent})
}

// ActiveRequest represents an active toggle body
type ActiveRequest struct {
	Active bool `json:"active"`
}

// SetActive toggles an agent's active flag (soft deactivation)
func (h *AdminAgentHandler) SetActive(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent id")
	}

	var req ActiveRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.agentService.SetActive(c.Context(), id, req.Active); err != nil {
		if errors.Is(err, domain.ErrAgentNotFound) {
			return response.NotFound(c, "Agent not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Agent updated successfully", nil)
}

// Recalculate recomputes an agent's shop and earnings counters
func (h *AdminAgentHandler) Recalculate(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid agent id")
	}

	agent, err := h.agentService.RecalculateEarnings(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrAgentNotFound) {
			return response.NotFound(c, "Agent not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Earnings recalculated", fiber.Map{"agent": agent})
}
