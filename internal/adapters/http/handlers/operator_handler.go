package handlers

import (
	"errors"
	"strings"

	"shoplocal-api/internal/adapters/http/middleware"
	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/config"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/core/services"
	"shoplocal-api/internal/pkg/pagination"
	"shoplocal-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// OperatorHandler handles the operator portal endpoints
type OperatorHandler struct {
	authService *services.AuthService
	shopService *services.ShopService
	cfg         *config.Config
}

// NewOperatorHandler creates a new operator handler
func NewOperatorHandler(authService *services.AuthService, shopService *services.ShopService, cfg *config.Config) *OperatorHandler {
	return &OperatorHandler{
		authService: authService,
		shopService: shopService,
		cfg:         cfg,
	}
}

// OperatorLoginRequest represents operator login request body
type OperatorLoginRequest struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Login handles operator login by phone
func (h *OperatorHandler) Login(c *fiber.Ctx) error {
	var req OperatorLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Phone == "" {
		return response.BadRequest(c, "Phone is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.OperatorLoginInput{
		Phone:    strings.TrimSpace(req.Phone),
		Password: req.Password,
	}

	result, err := h.authService.LoginOperator(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid phone or password")
		case errors.Is(err, domain.ErrAccountInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.Internal(c, err)
		}
	}

	setTokenCookie(c, h.cfg, middleware.OperatorCookie, result.Token)

	return response.Success(c, "Login successful", fiber.Map{
		"token":    result.Token,
		"operator": result.Principal,
	})
}

// Logout clears the operator token cookie
func (h *OperatorHandler) Logout(c *fiber.Ctx) error {
	clearTokenCookie(c, h.cfg, middleware.OperatorCookie)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current operator
func (h *OperatorHandler) Me(c *fiber.Ctx) error {
	operator, ok := c.Locals("operator").(*models.Operator)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "Operator retrieved successfully", fiber.Map{"operator": operator})
}

// Shops lists admin shops for field review
func (h *OperatorHandler) Shops(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	shops, total, err := h.shopService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Success(c, "Shops retrieved successfully", fiber.Map{
		"shops": shops,
		"meta":  pagination.GetMeta(params, total),
	})
}

// VisibilityRequest represents a visibility toggle body
type VisibilityRequest struct {
	Visible bool `json:"visible"`
}

// SetVisibility toggles a listing's public visibility wherever it lives
func (h *OperatorHandler) SetVisibility(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shop id")
	}

	var req VisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	shop, err := h.shopService.SetVisibility(c.Context(), id, req.Visible)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return response.NotFound(c, "Shop not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Visibility updated", fiber.Map{"shop": shop})
}
