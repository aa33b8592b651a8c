package services

import (
	"context"
	"fmt"
	"strings"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/adapters/persistence/repositories"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PageService handles CMS pages
type PageService struct {
	pageRepo repositories.PageRepository
}

// NewPageService creates a new page service
func NewPageService(pageRepo repositories.PageRepository) *PageService {
	return &PageService{pageRepo: pageRepo}
}

// PageInput represents page creation/update input
type PageInput struct {
	Title     string `json:"title"`
	Slug      string `json:"slug"`
	Body      string `json:"body"`
	Published bool   `json:"published"`
}

// Create creates a new page
func (s *PageService) Create(ctx context.Context, input *PageInput) (*models.Page, error) {
	page := &models.Page{
		Title:     strings.TrimSpace(input.Title),
		Slug:      strings.TrimSpace(input.Slug),
		Body:      input.Body,
		Published: input.Published,
	}

	if err := s.pageRepo.Create(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Get returns a page by ID
func (s *PageService) Get(ctx context.Context, id primitive.ObjectID) (*models.Page, error) {
	return s.pageRepo.GetByID(ctx, id)
}

// GetBySlug returns a page by slug
func (s *PageService) GetBySlug(ctx context.Context, slug string) (*models.Page, error) {
	return s.pageRepo.GetBySlug(ctx, slug)
}

// List lists pages with pagination
func (s *PageService) List(ctx context.Context, offset, limit int) ([]*models.Page, int64, error) {
	return s.pageRepo.List(ctx, offset, limit)
}

// Update updates a page
func (s *PageService) Update(ctx context.Context, id primitive.ObjectID, input *PageInput) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	page.Title = strings.TrimSpace(input.Title)
	page.Slug = strings.TrimSpace(input.Slug)
	page.Body = input.Body
	page.Published = input.Published

	if err := s.pageRepo.Update(ctx, page); err != nil {
		return nil, err
	}
	return page, nil
}

// Delete removes a page
func (s *PageService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.pageRepo.Delete(ctx, id)
}

// Duplicate copies a page under a fresh slug. The first copy of slug X
// gets X-copy; further copies get X-copy-1, X-copy-2, and so on, never
// colliding with an existing slug.
func (s *PageService) Duplicate(ctx context.Context, id primitive.ObjectID) (*models.Page, error) {
	page, err := s.pageRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	slug, err := nextCopySlug(page.Slug, func(candidate string) (bool, error) {
		return s.pageRepo.SlugExists(ctx, candidate)
	})
	if err != nil {
		return nil, err
	}

	copied := &models.Page{
		Title:     page.Title + " (copy)",
		Slug:      slug,
		Body:      page.Body,
		Published: false,
	}

	if err := s.pageRepo.Create(ctx, copied); err != nil {
		return nil, err
	}
	return copied, nil
}

// nextCopySlug finds the first free copy slug for a base slug
func nextCopySlug(slug string, exists func(string) (bool, error)) (string, error) {
	candidate := slug + "-copy"
	for i := 0; ; i++ {
		if i > 0 {
			candidate = fmt.Sprintf("%s-copy-%d", slug, i)
		}

		taken, err := exists(candidate)
		if err != nil {
			return "", err
		}
		if !taken {
			return candidate, nil
		}
	}
}
