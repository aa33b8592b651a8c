package handlers

import (
	"errors"

	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/core/services"
	"shoplocal-api/internal/pkg/pagination"
	"shoplocal-api/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PageHandler handles CMS page management
type PageHandler struct {
	pageService *services.PageService
}

// NewPageHandler creates a new page handler
func NewPageHandler(pageService *services.PageService) *PageHandler {
	return &PageHandler{pageService: pageService}
}

// List lists pages with pagination
func (h *PageHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	pages, total, err := h.pageService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.Internal(c, err)
	}

	return response.Success(c, "Pages retrieved successfully", fiber.Map{
		"pages": pages,
		"meta":  pagination.GetMeta(params, total),
	})
}

// Get returns one page
func (h *PageHandler) Get(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	page, err := h.pageService.Get(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return response.NotFound(c, "Page not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Page retrieved successfully", fiber.Map{"page": page})
}

// GetBySlug returns a published page for the public site
func (h *PageHandler) GetBySlug(c *fiber.Ctx) error {
	slug := c.Params("slug")
	if slug == "" {
		return response.BadRequest(c, "Slug is required")
	}

	page, err := h.pageService.GetBySlug(c.Context(), slug)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return response.NotFound(c, "Page not found")
		}
		return response.Internal(c, err)
	}

	if !page.Published {
		return response.NotFound(c, "Page not found")
	}

	return response.Success(c, "Page retrieved successfully", fiber.Map{"page": page})
}

// Create creates a new page
func (h *PageHandler) Create(c *fiber.Ctx) error {
	var req services.PageInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if req.Slug == "" {
		return response.BadRequest(c, "Slug is required")
	}

	page, err := h.pageService.Create(c.Context(), &req)
	if err != nil {
		if errors.Is(err, domain.ErrSlugTaken) {
			return response.Conflict(c, "Slug already in use")
		}
		return response.Internal(c, err)
	}

	return response.Created(c, "Page created successfully", fiber.Map{"page": page})
}

// Update updates a page
func (h *PageHandler) Update(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	var req services.PageInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if req.Slug == "" {
		return response.BadRequest(c, "Slug is required")
	}

	page, err := h.pageService.Update(c.Context(), id, &req)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrPageNotFound):
			return response.NotFound(c, "Page not found")
		case errors.Is(err, domain.ErrSlugTaken):
			return response.Conflict(c, "Slug already in use")
		default:
			return response.Internal(c, err)
		}
	}

	return response.Success(c, "Page updated successfully", fiber.Map{"page": page})
}

// Delete removes a page
func (h *PageHandler) Delete(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	if err := h.pageService.Delete(c.Context(), id); err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return response.NotFound(c, "Page not found")
		}
		return response.Internal(c, err)
	}

	return response.Success(c, "Page deleted successfully", nil)
}

// Duplicate copies a page under a fresh -copy slug
func (h *PageHandler) Duplicate(c *fiber.Ctx) error {
	id, err := parseObjectID(c)
	if err != nil {
		return response.BadRequest(c, "Invalid page id")
	}

	page, err := h.pageService.Duplicate(c.Context(), id)
	if err != nil {
		if errors.Is(err, domain.ErrPageNotFound) {
			return response.NotFound(c, "Page not found")
		}
		return response.Internal(c, err)
	}

	return response.Created(c, "Page duplicated successfully", fiber.Map{"page": page})
}
