package middleware

import (
	"strings"

	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/core/services"
	"shoplocal-api/internal/pkg/response"
	"shoplocal-api/internal/pkg/token"

	"github.com/gofiber/fiber/v2"
)

// Principal-kind cookie names used as bearer-header fallbacks
const (
	AdminCookie    = "admin_token"
	AgentCookie    = "agent_token"
	OperatorCookie = "operator_token"
)

// TokenFromHeaders extracts a token from an Authorization header or, as a
// fallback, from a named cookie in a raw Cookie header. The bearer header
// wins when both are present; a bearer prefix with an empty token segment
// counts as absent. Returns "" when no token is found.
func TokenFromHeaders(authorization, cookieHeader, cookieName string) string {
	if strings.HasPrefix(authorization, "Bearer ") {
		if t := strings.TrimSpace(strings.TrimPrefix(authorization, "Bearer ")); t != "" {
			return t
		}
	}
	return cookieValue(cookieHeader, cookieName)
}

// cookieValue parses a raw Cookie header for a named cookie. Whitespace
// around key=value pairs is tolerated and malformed segments are skipped;
// a missing cookie yields "".
func cookieValue(header, name string) string {
	for _, part := range strings.Split(header, ";") {
		key, value, found := strings.Cut(part, "=")
		if !found {
			continue
		}
		if strings.TrimSpace(key) == name {
			return strings.TrimSpace(value)
		}
	}
	return ""
}

// extractToken pulls the token for a principal kind out of the request
func extractToken(c *fiber.Ctx, cookieName string) string {
	return TokenFromHeaders(c.Get("Authorization"), c.Get("Cookie"), cookieName)
}

// AdminAuth authenticates a back-office user and stores it in the
// request context along with its role
func AdminAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c, AdminCookie)
		if raw == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		claims, err := authService.VerifyToken(raw)
		if err != nil {
			if err == token.ErrTokenExpired {
				return response.Unauthorized(c, "Token expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		user, err := authService.ResolveAdmin(c.Context(), claims)
		if err != nil {
			return response.Unauthorized(c, "Invalid token")
		}

		c.Locals("admin", user)
		c.Locals("role", user.Role)
		return c.Next()
	}
}

// AgentAuth authenticates an agent
func AgentAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c, AgentCookie)
		if raw == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		claims, err := authService.VerifyToken(raw)
		if err != nil {
			if err == token.ErrTokenExpired {
				return response.Unauthorized(c, "Token expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		agent, err := authService.ResolveAgent(c.Context(), claims)
		if err != nil {
			return response.Unauthorized(c, "Invalid token")
		}

		c.Locals("agent", agent)
		c.Locals("role", domain.RoleAgent)
		return c.Next()
	}
}

// OperatorAuth authenticates an operator. Deactivated operators fail
// resolution even with a valid token.
func OperatorAuth(authService *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		raw := extractToken(c, OperatorCookie)
		if raw == "" {
			return response.Unauthorized(c, "Authentication required")
		}

		claims, err := authService.VerifyToken(raw)
		if err != nil {
			if err == token.ErrTokenExpired {
				return response.Unauthorized(c, "Token expired")
			}
			return response.Unauthorized(c, "Invalid token")
		}

		operator, err := authService.ResolveOperator(c.Context(), claims)
		if err != nil {
			return response.Unauthorized(c, "Invalid token")
		}

		c.Locals("operator", operator)
		c.Locals("role", domain.RoleOperator)
		return c.Next()
	}
}

// RequireRoles denies the request unless the resolved principal carries
// one of the allowed roles. Deny short-circuits before any handler runs.
func RequireRoles(allowedRoles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals("role").(string)
		if !ok {
			return response.Unauthorized(c, "Unauthorized")
		}

		for _, allowedRole := range allowedRoles {
			if role == allowedRole {
				return c.Next()
			}
		}

		return response.Forbidden(c, "You don't have permission to access this resource")
	}
}

// AdminOnly allows only the admin role
func AdminOnly() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// CanEdit allows admin or editor roles
func CanEdit() fiber.Handler {
	return RequireRoles(domain.RoleAdmin, domain.RoleEditor)
}

// CanDelete allows only the admin role
func CanDelete() fiber.Handler {
	return RequireRoles(domain.RoleAdmin)
}

// Privileged allows any staff role
func Privileged() fiber.Handler {
	return RequireRoles(domain.RoleAdmin, domain.RoleEditor, domain.RoleOperator)
}
