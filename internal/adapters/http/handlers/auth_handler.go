package handlers

import (
	"errors"
	"strings"
	"time"

	"shoplocal-api/internal/adapters/http/middleware"
	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/config"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/core/services"
	"shoplocal-api/internal/pkg/pagination"
	"shoplocal-api/internal/pkg/response"
	"shoplocal-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles back-office authentication endpoints
type AuthHandler struct {
	authService *services.AuthService
	cfg         *config.Config
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *services.AuthService, cfg *config.Config) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		cfg:         cfg,
	}
}

// LoginRequest represents login request body
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles admin user login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
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

	result, err := h.authService.LoginAdmin(c.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidCredentials):
			return response.Unauthorized(c, "Invalid email or password")
		default:
			return response.Internal(c, err)
		}
	}

	setTokenCookie(c, h.cfg, middleware.AdminCookie, result.Token)

	return response.Success(c, "Login successful", fiber.Map{
		"token": result.Token,
		"user":  result.Principal,
	})
}

// Logout clears the admin token cookie
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	clearTokenCookie(c, h.cfg, middleware.AdminCookie)
	return response.Success(c, "Logged out successfully", nil)
}

// Me returns the current admin user
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, ok := c.Locals("admin").(*models.AdminUser)
	if !ok {
		return response.Unauthorized(c, "Unauthorized")
	}

	return response.Success(c, "User retrieved successfully", fiber.Map{
		"user": user,
	})
}

// Users lists back-office users
func (h *AuthHandler) Users(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	users, total, err := h.authService.ListAdmins(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Success(c, "Users retrieved successfully", fiber.Map{
		"users": users,
		"meta":  pagination.GetMeta(params, total),
	})
}

// setTokenCookie sets a principal-kind token cookie matching the token's
// validity window
func setTokenCookie(c *fiber.Ctx, cfg *config.Config, name, value string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    value,
		Expires:  time.Now().Add(token.DefaultValidityDays * 24 * time.Hour),
		HTTPOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
		Path:     "/",
	})
}

// clearTokenCookie expires a principal-kind token cookie
func clearTokenCookie(c *fiber.Ctx, cfg *config.Config, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		Secure:   cfg.Cookie.Secure,
		SameSite: cfg.Cookie.SameSite,
		Domain:   cfg.Cookie.Domain,
		Path:     "/",
	})
}
