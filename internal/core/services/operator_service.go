package services

import (
	"context"
	"log"
	"strings"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/adapters/persistence/repositories"
	"shoplocal-api/internal/pkg/password"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OperatorService handles operator provisioning
type OperatorService struct {
	operatorRepo repositories.OperatorRepository
}

// NewOperatorService creates a new operator service
func NewOperatorService(operatorRepo repositories.OperatorRepository) *OperatorService {
	return &OperatorService{operatorRepo: operatorRepo}
}

// CreateOperatorInput represents operator registration input
type CreateOperatorInput struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Create registers a new operator with a generated operator code
func (s *OperatorService) Create(ctx context.Context, input *CreateOperatorInput) (*models.Operator, error) {
	hash, err := password.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	operator := &models.Operator{
		Code:         "OPR-" + strings.ToUpper(uuid.New().String()[:8]),
		Name:         strings.TrimSpace(input.Name),
		Phone:        strings.TrimSpace(input.Phone),
		Email:        strings.TrimSpace(input.Email),
		PasswordHash: hash,
		IsActive:     true,
	}

	if err := s.operatorRepo.Create(ctx, operator); err != nil {
		return nil, err
	}

	log.Printf("Operator created: %s", operator.Code)
	return operator, nil
}

// List lists operators with pagination
func (s *OperatorService) List(ctx context.Context, offset, limit int) ([]*models.Operator, int64, error) {
	return s.operatorRepo.List(ctx, offset, limit)
}

// SetActive toggles an operator's active flag. Deactivation locks the
// operator out immediately since resolution filters on isActive.
func (s *OperatorService) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	return s.operatorRepo.SetActive(ctx, id, active)
}
