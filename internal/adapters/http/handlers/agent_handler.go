package handlers

import (
	"errors"
	"strings"

	"shoplocal-api/internal/adapters/http/middleware"
	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/config"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/core/services"
	"shoplocal-api/internal/pkg/password"
	"shoplocal-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// AgentHandler handles the agent portal endpoints
type AgentHandler struct {
	authService  *services.AuthService
	agentService *services.AgentService
	shopService  *services.ShopService
	otpService   *services.OTPService
	cfg          *config.Config
}

// NewAgentHandler creates a new agent handler
func NewAgentHandler(
	authService *services.AuthService,
	agentService *services.AgentService,
	shopService *services.ShopService,
	otpService *services.OTPService,
	cfg *config.Config,
) *AgentHandler {
	return &AgentHandler{
		authService:  authService,
		agentService: agentService,
		shopService:  shopService,
		otpService:   otpService,
		cfg:          cfg,
	}
}

// currentAgent returns the agent resolved by the auth middleware
func currentAgent(c *fiber.Ctx) (*models.Agent, bool) {
	agent, ok := c.Locals("agent").(*models.Agent)
	return agent, ok
}

// Login handles agent login
func (h *AgentHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}
	if req.Password == "" {
		return response.BadRequest(c, "Password is required")
	}

	input := &services.LoginInput{
		Email:    strings.TrimSpace(req.Email),
		Password: req.Password,
	}

	result, err := h.authService.LoginAgent(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		case errors.Is(err, domain.ErrAccountInactive):
			return response.Forbidden(c, "Account is inactive")
		default:
			return response.Internal(c, err)
		}
	}

	setTokenCookie(c, h.cfg, middleware.AgentCookie, result.Token)

	return response.Success(c, "Login successful", fiber.Map{
		"token": result.Token,
		"agent": result.Principal,
	})
}

// Logout clears the agent token cookie
func (h *AgentHandler) Logout(c *fiber.Ctx) error {
	clearTokenCookie(c, h.cfg, middleware.AgentCookie)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current agent
func (h *AgentHandler) Me(c *fiber.Ctx) error {
	agent, ok := currentAgent(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "Agent retrieved successfully", fiber.Map{"agent": agent})
}

// RegisterShop registers a new shop for the current agent
func (h *AgentHandler) RegisterShop(c *fiber.Ctx) error {
	agent, ok := currentAgent(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	var req services.ShopInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Shop name is required")
	}

	shop, err := h.shopService.RegisterForAgent(c.Context(), agent.ID, &req)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Created(c, "Shop registered successfully", fiber.Map{"shop": shop})
}

// MyShops lists the current agent's shops
func (h *AgentHandler) MyShops(c *fiber.Ctx) error {
	agent, ok := currentAgent(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	shops, err := h.shopService.ListByAgent(c.Context(), agent.ID)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Success(c, "Shops retrieved successfully", fiber.Map{"shops": shops})
}

// Earnings returns the current agent's commission breakdown
func (h *AgentHandler) Earnings(c *fiber.Ctx) error {
	agent, ok := currentAgent(c)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	earnings, err := h.agentService.Earnings(c.Context(), agent.ID)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Success(c, "Earnings retrieved successfully", earnings)
}

// OTPRequest represents an OTP request body
type OTPRequest struct {
	Email string `json:"email"`
}

// OTPVerifyRequest represents an OTP verification body
type OTPVerifyRequest struct {
	Email       string `json:"email"`
	Code        string `json:"code"`
	NewPassword string `json:"new_password"`
}

// RequestOTP issues a password reset code for an agent email.
// The response is identical whether or not the email exists; an unknown
// email gets a synthetic request id so the body cannot be used to
// enumerate accounts.
func (h *AgentHandler) RequestOTP(c *fiber.Ctx) error {
	var req OTPRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" {
		return response.BadRequest(c, "Email is required")
	}

	requestID, err := h.otpService.RequestReset(c.Context(), strings.TrimSpace(req.Email))
	if err != nil {
		if !errors.Is(err, domain.ErrAgentNotFound) {
			return response.Internal(c, err)
		}
		requestID = uuid.New().String()
	}

	return response.Success(c, "If the email exists, a code has been sent", fiber.Map{"request_id": requestID})
}

// VerifyOTP verifies a reset code and sets a new password
func (h *AgentHandler) VerifyOTP(c *fiber.Ctx) error {
	var req OTPVerifyRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Email == "" || req.Code == "" {
		return response.BadRequest(c, "Email and code are required")
	}
	if !password.ValidatePassword(req.NewPassword) {
		return response.BadRequest(c, "Password must be at least 8 characters")
	}

	err := h.otpService.VerifyReset(c.Context(), strings.TrimSpace(req.Email), req.Code, req.NewPassword)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrOTPNotFound), errors.Is(err, domain.ErrOTPMismatch):
			return response.BadRequest(c, "Invalid or expired code")
		case errors.Is(err, domain.ErrAgentNotFound):
			return response.BadRequest(c, "Invalid or expired code")
		default:
			return response.Internal(c, err)
		}
	}

	return response.Success(c, "Password reset successfully", nil)
}
