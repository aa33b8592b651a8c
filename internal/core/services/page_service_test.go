package services

import (
	"context"
	"testing"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// fakePageRepo is an in-memory PageRepository
type fakePageRepo struct {
	pages map[primitive.ObjectID]*models.Page
}

func newFakePageRepo() *fakePageRepo {
	return &fakePageRepo{pages: make(map[primitive.ObjectID]*models.Page)}
}

func (r *fakePageRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Page, error) {
	page, ok := r.pages[id]
	if !ok {
		return nil, domain.ErrPageNotFound
	}
	copied := *page
	return &copied, nil
}

func (r *fakePageRepo) GetBySlug(_ context.Context, slug string) (*models.Page, error) {
	for _, page := range r.pages {
		if page.Slug == slug {
			copied := *page
			return &copied, nil
		}
	}
	return nil, domain.ErrPageNotFound
}

func (r *fakePageRepo) SlugExists(_ context.Context, slug string) (bool, error) {
	for _, page := range r.pages {
		if page.Slug == slug {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePageRepo) Create(_ context.Context, page *models.Page) error {
	for _, existing := range r.pages {
		if existing.Slug == page.Slug {
			return domain.ErrSlugTaken
		}
	}
	page.ID = primitive.NewObjectID()
	copied := *page
	r.pages[page.ID] = &copied
	return nil
}

func (r *fakePageRepo) List(_ context.Context, _, _ int) ([]*models.Page, int64, error) {
	var pages []*models.Page
	for _, page := range r.pages {
		copied := *page
		pages = append(pages, &copied)
	}
	return pages, int64(len(pages)), nil
}

func (r *fakePageRepo) Update(_ context.Context, page *models.Page) error {
	if _, ok := r.pages[page.ID]; !ok {
		return domain.ErrPageNotFound
	}
	copied := *page
	r.pages[page.ID] = &copied
	return nil
}

func (r *fakePageRepo) Delete(_ context.Context, id primitive.ObjectID) error {
	if _, ok := r.pages[id]; !ok {
		return domain.ErrPageNotFound
	}
	delete(r.pages, id)
	return nil
}

func TestNextCopySlug(t *testing.T) {
	taken := map[string]bool{}
	exists := func(slug string) (bool, error) { return taken[slug], nil }

	slug, err := nextCopySlug("about-us", exists)
	require.NoError(t, err)
	assert.Equal(t, "about-us-copy", slug)

	taken["about-us-copy"] = true
	slug, err = nextCopySlug("about-us", exists)
	require.NoError(t, err)
	assert.Equal(t, "about-us-copy-1", slug)

	taken["about-us-copy-1"] = true
	slug, err = nextCopySlug("about-us", exists)
	require.NoError(t, err)
	assert.Equal(t, "about-us-copy-2", slug)
}

func TestDuplicateTwiceNeverCollides(t *testing.T) {
	repo := newFakePageRepo()
	svc := NewPageService(repo)

	original, err := svc.Create(context.Background(), &PageInput{
		Title:     "About us",
		Slug:      "about-us",
		Body:      "hello",
		Published: true,
	})
	require.NoError(t, err)

	first, err := svc.Duplicate(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, "about-us-copy", first.Slug)
	assert.False(t, first.Published, "copies start unpublished")

	second, err := svc.Duplicate(context.Background(), original.ID)
	require.NoError(t, err)
	assert.Equal(t, "about-us-copy-1", second.Slug)

	assert.NotEqual(t, first.ID, second.ID)
}
