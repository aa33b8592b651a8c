package services

import (
	"context"
	"errors"
	"log"
	"time"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/adapters/persistence/repositories"
	"shoplocal-api/internal/config"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/pkg/password"
	"shoplocal-api/internal/pkg/token"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AuthService handles authentication for all three principal kinds
type AuthService struct {
	adminRepo    repositories.AdminUserRepository
	agentRepo    repositories.AgentRepository
	operatorRepo repositories.OperatorRepository
	cfg          *config.Config
}

// NewAuthService creates a new auth service
func NewAuthService(
	adminRepo repositories.AdminUserRepository,
	agentRepo repositories.AgentRepository,
	operatorRepo repositories.OperatorRepository,
	cfg *config.Config,
) *AuthService {
	return &AuthService{
		adminRepo:    adminRepo,
		agentRepo:    agentRepo,
		operatorRepo: operatorRepo,
		cfg:          cfg,
	}
}

// LoginInput represents email/password credentials
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// OperatorLoginInput represents phone/password credentials
type OperatorLoginInput struct {
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

// AuthResult carries a signed token and the authenticated principal
type AuthResult struct {
	Token     string      `json:"token"`
	Principal interface{} `json:"principal"`
}

func (s *AuthService) validity() time.Duration {
	return time.Duration(s.cfg.JWT.TokenValidity) * 24 * time.Hour
}

// LoginAdmin authenticates a back-office user by email
func (s *AuthService) LoginAdmin(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	user, err := s.adminRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAdminNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !password.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Issue(user.ID.Hex(), user.Role, user.Email, s.cfg.JWT.Secret, s.validity())
	if err != nil {
		return nil, err
	}

	log.Printf("Admin logged in: %s", user.Email)
	return &AuthResult{Token: signed, Principal: user}, nil
}

// LoginAgent authenticates an agent by email
func (s *AuthService) LoginAgent(ctx context.Context, input *LoginInput) (*AuthResult, error) {
	agent, err := s.agentRepo.GetByEmail(ctx, input.Email)
	if err != nil {
		if errors.Is(err, domain.ErrAgentNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !agent.IsActive {
		return nil, domain.ErrAccountInactive
	}

	if !password.Verify(input.Password, agent.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Issue(agent.ID.Hex(), agent.Code, agent.Email, s.cfg.JWT.Secret, s.validity())
	if err != nil {
		return nil, err
	}

	log.Printf("Agent logged in: %s", agent.Code)
	return &AuthResult{Token: signed, Principal: agent}, nil
}

// LoginOperator authenticates an operator by phone
func (s *AuthService) LoginOperator(ctx context.Context, input *OperatorLoginInput) (*AuthResult, error) {
	operator, err := s.operatorRepo.GetByPhone(ctx, input.Phone)
	if err != nil {
		if errors.Is(err, domain.ErrOperatorNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	if !operator.IsActive {
		return nil, domain.ErrAccountInactive
	}

	if !password.Verify(input.Password, operator.PasswordHash) {
		return nil, domain.ErrInvalidCredentials
	}

	signed, err := token.Issue(operator.ID.Hex(), operator.Code, operator.Email, s.cfg.JWT.Secret, s.validity())
	if err != nil {
		return nil, err
	}

	log.Printf("Operator logged in: %s", operator.Code)
	return &AuthResult{Token: signed, Principal: operator}, nil
}

// ListAdmins lists back-office users with pagination
func (s *AuthService) ListAdmins(ctx context.Context, offset, limit int) ([]*models.AdminUser, int64, error) {
	return s.adminRepo.List(ctx, offset, limit)
}

// ResolveAdmin resolves verified claims to an admin user record
func (s *AuthService) ResolveAdmin(ctx context.Context, claims *token.Claims) (*models.AdminUser, error) {
	id, err := primitive.ObjectIDFromHex(claims.PrincipalID)
	if err != nil {
		return nil, domain.ErrAdminNotFound
	}
	return s.adminRepo.GetByID(ctx, id)
}

// ResolveAgent resolves verified claims to an agent record
func (s *AuthService) ResolveAgent(ctx context.Context, claims *token.Claims) (*models.Agent, error) {
	id, err := primitive.ObjectIDFromHex(claims.PrincipalID)
	if err != nil {
		return nil, domain.ErrAgentNotFound
	}

	agent, err := s.agentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !agent.IsActive {
		return nil, domain.ErrAgentNotFound
	}
	return agent, nil
}

// ResolveOperator resolves verified claims to an operator record.
// Inactive operators resolve as not found even with a valid token.
func (s *AuthService) ResolveOperator(ctx context.Context, claims *token.Claims) (*models.Operator, error) {
	id, err := primitive.ObjectIDFromHex(claims.PrincipalID)
	if err != nil {
		return nil, domain.ErrOperatorNotFound
	}
	return s.operatorRepo.GetActiveByID(ctx, id)
}

// VerifyToken validates a raw token string against the configured secret
func (s *AuthService) VerifyToken(raw string) (*token.Claims, error) {
	return token.Verify(raw, s.cfg.JWT.Secret)
}
