package middleware

import (
	"net/http/httptest"
	"testing"

	"shoplocal-api/internal/core/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenFromHeaders(t *testing.T) {
	tests := []struct {
		name          string
		authorization string
		cookieHeader  string
		cookieName    string
		want          string
	}{
		{
			name:          "bearer header wins over cookie",
			authorization: "Bearer header-token",
			cookieHeader:  "agent_token=cookie-token",
			cookieName:    AgentCookie,
			want:          "header-token",
		},
		{
			name:         "cookie fallback",
			cookieHeader: "agent_token=abc123; other=xyz",
			cookieName:   AgentCookie,
			want:         "abc123",
		},
		{
			name:         "cookie with whitespace around pairs",
			cookieHeader: "  other=xyz ;  agent_token =  abc123  ",
			cookieName:   AgentCookie,
			want:         "abc123",
		},
		{
			name:         "target cookie absent",
			cookieHeader: "other=xyz; another=123",
			cookieName:   AgentCookie,
			want:         "",
		},
		{
			name:         "malformed cookie string does not crash",
			cookieHeader: ";;==; garbage ; =novalue; agent_token",
			cookieName:   AgentCookie,
			want:         "",
		},
		{
			name:          "empty bearer segment falls back to cookie",
			authorization: "Bearer ",
			cookieHeader:  "operator_token=op-token",
			cookieName:    OperatorCookie,
			want:          "op-token",
		},
		{
			name:          "empty bearer segment with no cookie is absent",
			authorization: "Bearer ",
			want:          "",
		},
		{
			name:          "non-bearer authorization is ignored",
			authorization: "Basic dXNlcjpwYXNz",
			cookieHeader:  "agent_token=abc123",
			cookieName:    AgentCookie,
			want:          "abc123",
		},
		{
			name: "nothing at all",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TokenFromHeaders(tt.authorization, tt.cookieHeader, tt.cookieName)
			assert.Equal(t, tt.want, got)
		})
	}
}

// roleApp builds a fiber app that fakes principal resolution with a fixed
// role, then applies the gate in front of a marker handler
func roleApp(role string, gate fiber.Handler) *fiber.App {
	app := fiber.New()
	app.Get("/probe",
		func(c *fiber.Ctx) error {
			if role != "" {
				c.Locals("role", role)
			}
			return c.Next()
		},
		gate,
		func(c *fiber.Ctx) error {
			return c.SendString("handler ran")
		},
	)
	return app
}

func TestRoleGate(t *testing.T) {
	tests := []struct {
		name       string
		role       string
		gate       fiber.Handler
		wantStatus int
	}{
		{"admin passes admin-only", domain.RoleAdmin, AdminOnly(), fiber.StatusOK},
		{"editor denied admin-only", domain.RoleEditor, AdminOnly(), fiber.StatusForbidden},
		{"operator denied admin-only", domain.RoleOperator, AdminOnly(), fiber.StatusForbidden},
		{"admin passes edit", domain.RoleAdmin, CanEdit(), fiber.StatusOK},
		{"editor passes edit", domain.RoleEditor, CanEdit(), fiber.StatusOK},
		{"operator denied edit", domain.RoleOperator, CanEdit(), fiber.StatusForbidden},
		{"admin passes delete", domain.RoleAdmin, CanDelete(), fiber.StatusOK},
		{"editor denied delete", domain.RoleEditor, CanDelete(), fiber.StatusForbidden},
		{"operator denied delete", domain.RoleOperator, CanDelete(), fiber.StatusForbidden},
		{"admin passes privileged", domain.RoleAdmin, Privileged(), fiber.StatusOK},
		{"editor passes privileged", domain.RoleEditor, Privileged(), fiber.StatusOK},
		{"operator passes privileged", domain.RoleOperator, Privileged(), fiber.StatusOK},
		{"no role is unauthorized", "", AdminOnly(), fiber.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := roleApp(tt.role, tt.gate)

			resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

// TestDenyShortCircuits verifies the handler body never runs on deny
func TestDenyShortCircuits(t *testing.T) {
	ran := false
	app := fiber.New()
	app.Get("/probe",
		func(c *fiber.Ctx) error {
			c.Locals("role", domain.RoleEditor)
			return c.Next()
		},
		CanDelete(),
		func(c *fiber.Ctx) error {
			ran = true
			return c.SendString("handler ran")
		},
	)

	resp, err := app.Test(httptest.NewRequest("GET", "/probe", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusForbidden, resp.StatusCode)
	assert.False(t, ran, "handler body must not execute after deny")
}
