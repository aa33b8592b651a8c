package services

import (
	"context"
	"testing"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/config"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/pkg/password"
	"shoplocal-api/internal/pkg/token"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func testConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:        "test-signing-secret",
			TokenValidity: 30,
		},
	}
}

// fakeAdminRepo is an in-memory AdminUserRepository
type fakeAdminRepo struct {
	users map[primitive.ObjectID]*models.AdminUser
}

func (r *fakeAdminRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.AdminUser, error) {
	if user, ok := r.users[id]; ok {
		return user, nil
	}
	return nil, domain.ErrAdminNotFound
}

func (r *fakeAdminRepo) GetByEmail(_ context.Context, email string) (*models.AdminUser, error) {
	for _, user := range r.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, domain.ErrAdminNotFound
}

func (r *fakeAdminRepo) Create(_ context.Context, user *models.AdminUser) error {
	user.ID = primitive.NewObjectID()
	r.users[user.ID] = user
	return nil
}

func (r *fakeAdminRepo) List(_ context.Context, _, _ int) ([]*models.AdminUser, int64, error) {
	return nil, 0, nil
}

// fakeAgentRepo is an in-memory AgentRepository
type fakeAgentRepo struct {
	agents map[primitive.ObjectID]*models.Agent
}

func (r *fakeAgentRepo) GetByID(_ context.Context, id primitive.ObjectID) (*models.Agent, error) {
	if agent, ok := r.agents[id]; ok {
		return agent, nil
	}
	return nil, domain.ErrAgentNotFound
}

func (r *fakeAgentRepo) GetByEmail(_ context.Context, email string) (*models.Agent, error) {
	for _, agent := range r.agents {
		if agent.Email == email {
			return agent, nil
		}
	}
	return nil, domain.ErrAgentNotFound
}

func (r *fakeAgentRepo) Create(_ context.Context, agent *models.Agent) error {
	agent.ID = primitive.NewObjectID()
	r.agents[agent.ID] = agent
	return nil
}

func (r *fakeAgentRepo) List(_ context.Context, _, _ int) ([]*models.Agent, int64, error) {
	return nil, 0, nil
}

func (r *fakeAgentRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	agent, ok := r.agents[id]
	if !ok {
		return domain.ErrAgentNotFound
	}
	agent.IsActive = active
	return nil
}

func (r *fakeAgentRepo) UpdatePasswordHash(_ context.Context, id primitive.ObjectID, hash string) error {
	agent, ok := r.agents[id]
	if !ok {
		return domain.ErrAgentNotFound
	}
	agent.PasswordHash = hash
	return nil
}

func (r *fakeAgentRepo) UpdateEarnings(_ context.Context, id primitive.ObjectID, totalShops int64, totalEarnings float64) error {
	agent, ok := r.agents[id]
	if !ok {
		return domain.ErrAgentNotFound
	}
	agent.TotalShops = totalShops
	agent.TotalEarnings = totalEarnings
	return nil
}

// fakeOperatorRepo is an in-memory OperatorRepository honoring the
// active-only resolution contract
type fakeOperatorRepo struct {
	operators map[primitive.ObjectID]*models.Operator
}

func (r *fakeOperatorRepo) GetActiveByID(_ context.Context, id primitive.ObjectID) (*models.Operator, error) {
	operator, ok := r.operators[id]
	if !ok || !operator.IsActive {
		return nil, domain.ErrOperatorNotFound
	}
	return operator, nil
}

func (r *fakeOperatorRepo) GetByPhone(_ context.Context, phone string) (*models.Operator, error) {
	for _, operator := range r.operators {
		if operator.Phone == phone {
			return operator, nil
		}
	}
	return nil, domain.ErrOperatorNotFound
}

func (r *fakeOperatorRepo) Create(_ context.Context, operator *models.Operator) error {
	operator.ID = primitive.NewObjectID()
	r.operators[operator.ID] = operator
	return nil
}

func (r *fakeOperatorRepo) List(_ context.Context, _, _ int) ([]*models.Operator, int64, error) {
	var operators []*models.Operator
	for _, operator := range r.operators {
		operators = append(operators, operator)
	}
	return operators, int64(len(operators)), nil
}

func (r *fakeOperatorRepo) SetActive(_ context.Context, id primitive.ObjectID, active bool) error {
	operator, ok := r.operators[id]
	if !ok {
		return domain.ErrOperatorNotFound
	}
	operator.IsActive = active
	return nil
}

func newAuthService(t *testing.T) (*AuthService, *fakeAdminRepo, *fakeAgentRepo, *fakeOperatorRepo) {
	t.Helper()
	adminRepo := &fakeAdminRepo{users: map[primitive.ObjectID]*models.AdminUser{}}
	agentRepo := &fakeAgentRepo{agents: map[primitive.ObjectID]*models.Agent{}}
	operatorRepo := &fakeOperatorRepo{operators: map[primitive.ObjectID]*models.Operator{}}
	return NewAuthService(adminRepo, agentRepo, operatorRepo, testConfig()), adminRepo, agentRepo, operatorRepo
}

func mustHash(t *testing.T, plain string) string {
	t.Helper()
	hash, err := password.Hash(plain)
	require.NoError(t, err)
	return hash
}

func TestLoginAdmin(t *testing.T) {
	svc, adminRepo, _, _ := newAuthService(t)
	require.NoError(t, adminRepo.Create(context.Background(), &models.AdminUser{
		Email:        "admin@example.com",
		PasswordHash: mustHash(t, "admin-password"),
		Role:         domain.RoleAdmin,
	}))

	result, err := svc.LoginAdmin(context.Background(), &LoginInput{
		Email:    "admin@example.com",
		Password: "admin-password",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)

	claims, err := svc.VerifyToken(result.Token)
	require.NoError(t, err)
	assert.Equal(t, "admin@example.com", claims.Email)

	_, err = svc.LoginAdmin(context.Background(), &LoginInput{
		Email:    "admin@example.com",
		Password: "wrong-password",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.LoginAdmin(context.Background(), &LoginInput{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestLoginOperatorInactive(t *testing.T) {
	svc, _, _, operatorRepo := newAuthService(t)
	require.NoError(t, operatorRepo.Create(context.Background(), &models.Operator{
		Code:         "OPR-1",
		Phone:        "+15550001111",
		PasswordHash: mustHash(t, "operator-password"),
		IsActive:     false,
	}))

	_, err := svc.LoginOperator(context.Background(), &OperatorLoginInput{
		Phone:    "+15550001111",
		Password: "operator-password",
	})
	assert.ErrorIs(t, err, domain.ErrAccountInactive)
}

// A deactivated operator stops resolving immediately, even though its
// token is still structurally valid.
func TestResolveOperatorDeactivated(t *testing.T) {
	svc, _, _, operatorRepo := newAuthService(t)
	operator := &models.Operator{
		Code:         "OPR-2",
		Phone:        "+15550002222",
		Email:        "op@example.com",
		PasswordHash: mustHash(t, "operator-password"),
		IsActive:     true,
	}
	require.NoError(t, operatorRepo.Create(context.Background(), operator))

	result, err := svc.LoginOperator(context.Background(), &OperatorLoginInput{
		Phone:    "+15550002222",
		Password: "operator-password",
	})
	require.NoError(t, err)

	claims, err := svc.VerifyToken(result.Token)
	require.NoError(t, err)

	resolved, err := svc.ResolveOperator(context.Background(), claims)
	require.NoError(t, err)
	assert.Equal(t, operator.ID, resolved.ID)

	// Deactivate and resolve again with the same valid token
	require.NoError(t, operatorRepo.SetActive(context.Background(), operator.ID, false))

	resolved, err = svc.ResolveOperator(context.Background(), claims)
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, domain.ErrOperatorNotFound)
}

func TestResolveAgentDeactivated(t *testing.T) {
	svc, _, agentRepo, _ := newAuthService(t)
	agent := &models.Agent{
		Code:         "AGT-1",
		Email:        "agent@example.com",
		PasswordHash: mustHash(t, "agent-password"),
		IsActive:     true,
	}
	require.NoError(t, agentRepo.Create(context.Background(), agent))

	result, err := svc.LoginAgent(context.Background(), &LoginInput{
		Email:    "agent@example.com",
		Password: "agent-password",
	})
	require.NoError(t, err)

	claims, err := svc.VerifyToken(result.Token)
	require.NoError(t, err)

	require.NoError(t, agentRepo.SetActive(context.Background(), agent.ID, false))

	resolved, err := svc.ResolveAgent(context.Background(), claims)
	assert.Nil(t, resolved)
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)
}

func TestResolveWithGarbageClaims(t *testing.T) {
	svc, _, _, _ := newAuthService(t)

	claims := &token.Claims{PrincipalID: "not-an-object-id"}

	_, err := svc.ResolveAdmin(context.Background(), claims)
	assert.ErrorIs(t, err, domain.ErrAdminNotFound)

	_, err = svc.ResolveAgent(context.Background(), claims)
	assert.ErrorIs(t, err, domain.ErrAgentNotFound)

	_, err = svc.ResolveOperator(context.Background(), claims)
	assert.ErrorIs(t, err, domain.ErrOperatorNotFound)
}
