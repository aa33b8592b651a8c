package handlers

import (
	"errors"

	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/core/services"
	"shoplocal-api/internal/pkg/pagination"
	"shoplocal-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShopHandler handles back-office listing management
type ShopHandler struct {
	shopService *services.ShopService
}

// NewShopHandler creates a new shop handler
func NewShopHandler(shopService *services.ShopService) *ShopHandler {
	return &ShopHandler{shopService: shopService}
}

// parseObjectID parses the :id route param
func parseObjectID(c *fiber.Ctx) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(c.Params("id"))
}

// List lists admin shops with pagination
func (h *ShopHandler) List(c *fiber.Ctx) error {
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

// Get returns one admin shop
func (h *ShopHandler) Get(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shop id")
	}

	shop, err := h.shopService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return response.NotFound(c, "Shop not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Shop retrieved successfully", fiber.Map{"shop": shop})
}

// Create creates an admin shop
func (h *ShopHandler) Create(c *fiber.Ctx) error {
	var req services.ShopInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Shop name is required")
	}

	shop, err := h.shopService.Create(c.Context(), &req)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Created(c, "Shop created successfully", fiber.Map{"shop": shop})
}

// Update updates an admin shop
func (h *ShopHandler) Update(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shop id")
	}

	var req services.ShopInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Name == "" {
		return response.BadRequest(c, "Shop name is required")
	}

	shop, err := h.shopService.Update(c.Context(), id, &req)
	if err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return response.NotFound(c, "Shop not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Shop updated successfully", fiber.Map{"shop": shop})
}

// Delete removes an admin shop
func (h *ShopHandler) Delete(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shop id")
	}

	if err := h.shopService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrShopNotFound) {
			return response.NotFound(c, "Shop not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Shop deleted successfully", nil)
}

// ConfirmPayment transitions a listing PENDING -> PAID
func (h *ShopHandler) ConfirmPayment(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid shop id")
	}

	shop, err := h.shopService.ConfirmPayment(c.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrShopNotFound):
			return response.NotFound(c, "Shop not found")
		case errors.Is(err, domain.ErrShopAlreadyPaid):
			return response.Conflict(c, "Shop payment already confirmed")
		default:
			return response.Internal(c, err)
		}
	}

	return response.Success(c, "Payment confirmed", fiber.Map{"shop": shop})
}
