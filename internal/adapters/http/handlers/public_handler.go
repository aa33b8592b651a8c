package handlers

import (
	"errors"

	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/core/services"
	"shoplocal-api/internal/pkg/pagination"
	"shoplocal-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PublicHandler handles the unauthenticated directory endpoints
type PublicHandler struct {
	shopService *services.ShopService
}

// NewPublicHandler creates a new public handler
func NewPublicHandler(shopService *services.ShopService) *PublicHandler {
	return &PublicHandler{shopService: shopService}
}

// Shops lists visible, unexpired listings
func (h *PublicHandler) Shops(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	shops, total, err := h.shopService.ListPublic(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Success(c, "Shops retrieved successfully", fiber.Map{
		"shops": shops,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Shop returns one listing, resolved across the listing collections
func (h *PublicHandler) Shop(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shop id")
	}

	shop, _, err := h.shopService.FindAny(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return response.NotFound(c, "Shop not found")
		}
		return response.Internal(c, err)
	}

	if !shop.IsVisible || shop.IsExpired() {
		return response.NotFound(c, "Shop not found")
	}

	return response.Success(c, "Shop retrieved successfully", fiber.Map{"shop": shop})
}

// Visit bumps a listing's visit counter
func (h *PublicHandler) Visit(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shop id")
	}

	kind, err := h.shopService.RegisterVisit(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return response.NotFound(c, "Shop not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Visit recorded", fiber.Map{"kind": kind})
}
