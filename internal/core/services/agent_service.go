package services

import (
	"context"
	"log"
	"strings"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/adapters/persistence/repositories"
	"shoplocal-api/internal/pkg/password"
	"shoplocal-api/internal/pkg/pricing"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AgentService handles agent management and earnings
type AgentService struct {
	agentRepo repositories.AgentRepository
	shopRepo  repositories.ShopRepository
}

// NewAgentService creates a new agent service
func NewAgentService(agentRepo repositories.AgentRepository, shopRepo repositories.ShopRepository) *AgentService {
	return &AgentService{
		agentRepo: agentRepo,
		shopRepo:  shopRepo,
	}
}

// CreateAgentInput represents agent registration input
type CreateAgentInput struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// Create registers a new agent with a generated agent code
func (s *AgentService) Create(ctx context.Context, input *CreateAgentInput) (*models.Agent, error) {
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	agent := &models.Agent{
		Code:         "AGT-" + strings.ToUpper(uuid.New().String()[:8]),
		Name:         strings.TrimSpace(input.Name),
		Email:        strings.TrimSpace(input.Email),
		Phone:        strings.TrimSpace(input.Phone),
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.agentRepo.Create(ctx, agent); err != nil {
		return nil, err
	}

	log.Printf("Agent created: %s", agent.Code)
	return agent, nil
}

// List lists agents with pagination
func (s *AgentService) List(ctx context.Context, offset, limit int) ([]*models.Agent, int64, error) {
	return s.agentRepo.List(ctx, offset, limit)
}

// SetActive toggles an agent's active flag
func (s *AgentService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return s.agentRepo.SetActive(ctx, id, active)
}

// RecalculateEarnings recomputes an agent's counters from scratch: the
// total never trusts previous increments, it is always the sum of
// commissions over the agent's currently paid shops.
func (s *AgentService) RecalculateEarnings(ctx context.Context, id primitive.ObjectID) (*models.Agent, error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	allShops, err := s.shopRepo.ListByAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	paidShops, err := s.shopRepo.ListPaidByAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	amounts := make([]float64, 0, len(paidShops))
	for _, shop := range paidShops {
		amounts = append(amounts, shop.Amount)
	}

	totalShops := int64(len(allShops))
	totalEarnings := pricing.TotalEarnings(amounts)

	if err := s.agentRepo.UpdateEarnings(ctx, id, totalShops, totalEarnings); err != nil {
		return nil, err
	}

	agent.TotalShops = totalShops
	agent.TotalEarnings = totalEarnings

	log.Printf("Earnings recalculated for agent %s: shops=%d earnings=%.0f", agent.Code, totalShops, totalEarnings)
	return agent, nil
}

// Earnings returns the agent's current counters plus the per-shop
// commission breakdown over paid shops
func (s *AgentService) Earnings(ctx context.Context, id primitive.ObjectID) (map[string]interface{}, error) {
	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	paidShops, err := s.shopRepo.ListPaidByAgent(ctx, id)
	if err != nil {
		return nil, err
	}

	type shopCommission struct {
		ShopID     string  `json:"shop_id"`
		Name       string  `json:"name"`
		Amount     float64 `json:"amount"`
		Commission float64 `json:"commission"`
	}

	breakdown := make([]shopCommission, 0, len(paidShops))
	var total float64
	for _, shop := range paidShops {
		commission := pricing.Commission(shop.Amount)
		total += commission
		breakdown = append(breakdown, shopCommission{
			ShopID:     shop.ID.Hex(),
			Name:       shop.Name,
			Amount:     shop.Amount,
			Commission: commission,
		})
	}

	return map[string]interface{}{
		"agent_code":     agent.Code,
		"total_shops":    agent.TotalShops,
		"total_earnings": total,
		"commissions":    breakdown,
	}, nil
}
