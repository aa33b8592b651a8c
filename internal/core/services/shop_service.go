package services

import (
	"context"
	"log"
	"strings"
	"time"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/adapters/persistence/repositories"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/pkg/pricing"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// DefaultListingTerm is the validity of a new listing
const DefaultListingTerm = 365 * 24 * time.Hour

// ShopService handles listing lifecycle across the admin, legacy and
// agent shop collections
type ShopService struct {
	shopRepo  repositories.ShopRepository
	agentRepo repositories.AgentRepository
}

// NewShopService creates a new shop service
func NewShopService(shopRepo repositories.ShopRepository, agentRepo repositories.AgentRepository) *ShopService {
	return &ShopService{
		shopRepo:  shopRepo,
		agentRepo: agentRepo,
	}
}

// ShopInput represents listing creation/update input
type ShopInput struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Address  string  `json:"address"`
	Phone    string  `json:"phone"`
	Amount   float64 `json:"amount"`
}

func (in *ShopInput) toShop() *models.Shop {
	amount := in.Amount
	if amount <= 0 {
		amount = pricing.DefaultListingAmount
	}

	return &models.Shop{
		Name:          strings.TrimSpace(in.Name),
		Category:      strings.TrimSpace(in.Category),
		Address:       strings.TrimSpace(in.Address),
		Phone:         strings.TrimSpace(in.Phone),
		PaymentStatus: domain.PaymentPending,
		Amount:        amount,
		ExpiryDate:    time.Now().Add(DefaultListingTerm),
		IsVisible:     false,
	}
}

// Create creates an admin-owned listing
func (s *ShopService) Create(ctx context.Context, input *ShopInput) (*models.Shop, error) {
	shop := input.toShop()
	if err := s.shopRepo.Create(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// RegisterForAgent creates a listing owned by an agent, then refreshes the
// agent's derived counters
func (s *ShopService) RegisterForAgent(ctx context.Context, agentID primitive.ObjectID, input *ShopInput) (*models.Shop, error) {
	shop := input.toShop()
	shop.AgentID = &agentID

	if err := s.shopRepo.CreateAgentShop(ctx, shop); err != nil {
		return nil, err
	}

	if err := s.refreshAgentCounters(ctx, agentID); err != nil {
		log.Printf("Warning: failed to refresh counters for agent %s: %v", agentID.Hex(), err)
	}

	return shop, nil
}

// Get returns an admin listing
func (s *ShopService) Get(ctx context.Context, id primitive.ObjectID) (*models.Shop, error) {
	return s.shopRepo.GetByID(ctx, id)
}

// List lists admin listings with pagination
func (s *ShopService) List(ctx context.Context, offset, limit int) ([]*models.Shop, int64, error) {
	return s.shopRepo.List(ctx, offset, limit)
}

// ListPublic lists visible, unexpired listings for the public site
func (s *ShopService) ListPublic(ctx context.Context, offset, limit int) ([]*models.Shop, int64, error) {
	return s.shopRepo.ListVisible(ctx, offset, limit)
}

// ListByAgent lists all listings registered by an agent
func (s *ShopService) ListByAgent(ctx context.Context, agentID primitive.ObjectID) ([]*models.Shop, error) {
	return s.shopRepo.ListByAgent(ctx, agentID)
}

// FindAny resolves an ID across the three listing collections
func (s *ShopService) FindAny(ctx context.Context, id primitive.ObjectID) (*models.Shop, string, error) {
	return s.shopRepo.FindAnyByID(ctx, id)
}

// Update updates an admin listing's editable fields
func (s *ShopService) Update(ctx context.Context, id primitive.ObjectID, input *ShopInput) (*models.Shop, error) {
	shop, err := s.shopRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	shop.Name = strings.TrimSpace(input.Name)
	shop.Category = strings.TrimSpace(input.Category)
	shop.Address = strings.TrimSpace(input.Address)
	shop.Phone = strings.TrimSpace(input.Phone)
	if input.Amount > 0 {
		shop.Amount = input.Amount
	}

	if err := s.shopRepo.Update(ctx, shop); err != nil {
		return nil, err
	}
	return shop, nil
}

// Delete removes an admin listing
func (s *ShopService) Delete(ctx context.Context, id primitive.ObjectID) error {
	return s.shopRepo.Delete(ctx, id)
}

// ConfirmPayment transitions a listing PENDING -> PAID wherever it lives.
// Paid listings become visible; for agent listings the owning agent's
// earnings are recomputed in full.
func (s *ShopService) ConfirmPayment(ctx context.Context, id primitive.ObjectID) (*models.Shop, error) {
	shop, kind, err := s.shopRepo.FindAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if shop.PaymentStatus == domain.PaymentPaid {
		return nil, domain.ErrShopAlreadyPaid
	}

	if err := s.shopRepo.MarkPaid(ctx, id, kind); err != nil {
		return nil, err
	}
	if err := s.shopRepo.SetVisibility(ctx, id, kind, true); err != nil {
		return nil, err
	}

	shop.PaymentStatus = domain.PaymentPaid
	shop.IsVisible = true

	if shop.AgentID != nil {
		if err := s.refreshAgentCounters(ctx, *shop.AgentID); err != nil {
			log.Printf("Warning: failed to refresh counters for agent %s: %v", shop.AgentID.Hex(), err)
		}
	}

	log.Printf("Payment confirmed for shop %s (%s)", shop.ID.Hex(), kind)
	return shop, nil
}

// SetVisibility toggles a listing's public visibility wherever it lives
func (s *ShopService) SetVisibility(ctx context.Context, id primitive.ObjectID, visible bool) (*models.Shop, error) {
	shop, kind, err := s.shopRepo.FindAnyByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.shopRepo.SetVisibility(ctx, id, kind, visible); err != nil {
		return nil, err
	}

	shop.IsVisible = visible
	return shop, nil
}

// RegisterVisit bumps the visit counter, resolving the ID across the
// listing collections in order with first-match-wins semantics
func (s *ShopService) RegisterVisit(ctx context.Context, id primitive.ObjectID) (string, error) {
	return s.shopRepo.IncrementVisits(ctx, id)
}

// refreshAgentCounters recomputes totalShops and totalEarnings from the
// agent's shops; the stored counters are never trusted incrementally
func (s *ShopService) refreshAgentCounters(ctx context.Context, agentID primitive.ObjectID) error {
	allShops, err := s.shopRepo.ListByAgent(ctx, agentID)
	if err != nil {
		return err
	}

	paidShops, err := s.shopRepo.ListPaidByAgent(ctx, agentID)
	if err != nil {
		return err
	}

	amounts := make([]float64, 0, len(paidShops))
	for _, shop := range paidShops {
		amounts = append(amounts, shop.Amount)
	}

	return s.agentRepo.UpdateEarnings(ctx, agentID, int64(len(allShops)), pricing.TotalEarnings(amounts))
}
