package services

import (
	"context"
	"testing"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/pkg/pricing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func newShopService() (*ShopService, *fakeShopRepo, *fakeAgentRepo) {
	agentRepo := &fakeAgentRepo{agents: map[primitive.ObjectID]*models.Agent{}}
	shopRepo := newFakeShopRepo()
	return NewShopService(shopRepo, agentRepo), shopRepo, agentRepo
}

func TestCreateAppliesDefaults(t *testing.T) {
	svc, _, _ := newShopService()

	shop, err := svc.Create(context.Background(), &ShopInput{
		Name:     "  Corner Bakery ",
		Category: "food",
	})
	require.NoError(t, err)
	assert.Equal(t, "Corner Bakery", shop.Name)
	assert.Equal(t, float64(pricing.DefaultListingAmount), shop.Amount)
	assert.Equal(t, domain.PaymentPending, shop.PaymentStatus)
	assert.False(t, shop.IsVisible)
	assert.False(t, shop.IsExpired())
}

func TestConfirmPayment(t *testing.T) {
	svc, shopRepo, _ := newShopService()

	shop, err := svc.Create(context.Background(), &ShopInput{Name: "Corner Bakery", Amount: 250})
	require.NoError(t, err)

	paid, err := svc.ConfirmPayment(context.Background(), shop.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.PaymentPaid, paid.PaymentStatus)
	assert.True(t, paid.IsVisible)

	// Second confirmation must be rejected
	_, err = svc.ConfirmPayment(context.Background(), shop.ID)
	assert.ErrorIs(t, err, domain.ErrShopAlreadyPaid)

	stored := shopRepo.shops[shop.ID]
	assert.Equal(t, domain.PaymentPaid, stored.PaymentStatus)
	assert.True(t, stored.IsVisible)
}

func TestConfirmPaymentRefreshesAgentCounters(t *testing.T) {
	svc, _, agentRepo := newShopService()

	agent := &models.Agent{Code: "AGT-TEST", Email: "agent@example.com", IsActive: true}
	require.NoError(t, agentRepo.Create(context.Background(), agent))

	shop, err := svc.RegisterForAgent(context.Background(), agent.ID, &ShopInput{
		Name:   "Corner Bakery",
		Amount: 250,
	})
	require.NoError(t, err)

	stored, err := agentRepo.GetByID(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.TotalShops)
	assert.Equal(t, float64(0), stored.TotalEarnings, "pending shops earn nothing")

	_, err = svc.ConfirmPayment(context.Background(), shop.ID)
	require.NoError(t, err)

	stored, err = agentRepo.GetByID(context.Background(), agent.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stored.TotalShops)
	assert.Equal(t, float64(50), stored.TotalEarnings)
}

func TestRegisterVisitResolvesAcrossCollections(t *testing.T) {
	svc, shopRepo, _ := newShopService()

	legacy := &models.Shop{Name: "Old Timer", PaymentStatus: domain.PaymentPaid}
	shopRepo.insert(legacy, domain.ShopKindLegacy)

	kind, err := svc.RegisterVisit(context.Background(), legacy.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.ShopKindLegacy, kind)
	assert.Equal(t, int64(1), shopRepo.shops[legacy.ID].Visits)

	_, err = svc.RegisterVisit(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, domain.ErrShopNotFound)
}

// A public page mixes admin and agent listings but never exceeds the
// requested page size.
func TestListPublicHonorsPageSize(t *testing.T) {
	svc, shopRepo, _ := newShopService()

	for i := 0; i < 3; i++ {
		shopRepo.insert(&models.Shop{Name: "admin shop", IsVisible: true}, domain.ShopKindAdmin)
		shopRepo.insert(&models.Shop{Name: "agent shop", IsVisible: true}, domain.ShopKindAgent)
	}

	shops, total, err := svc.ListPublic(context.Background(), 0, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(6), total)
	assert.Len(t, shops, 4)

	rest, _, err := svc.ListPublic(context.Background(), 4, 4)
	require.NoError(t, err)
	assert.Len(t, rest, 2)
}

func TestSetVisibilityAcrossCollections(t *testing.T) {
	svc, shopRepo, _ := newShopService()

	agentShop := &models.Shop{Name: "Field Shop", PaymentStatus: domain.PaymentPaid, IsVisible: true}
	shopRepo.insert(agentShop, domain.ShopKindAgent)

	hidden, err := svc.SetVisibility(context.Background(), agentShop.ID, false)
	require.NoError(t, err)
	assert.False(t, hidden.IsVisible)
	assert.False(t, shopRepo.shops[agentShop.ID].IsVisible)
}
