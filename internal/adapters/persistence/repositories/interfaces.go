package repositories

import (
	"context"

	"shoplocal-api/internal/adapters/persistence/models"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// AdminUserRepository defines admin user data access
type AdminUserRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.AdminUser, error)
	GetByEmail(ctx context.Context, email string) (*models.AdminUser, error)
	Create(ctx context.Context, user *models.AdminUser) error
	List(ctx context.Context, offset, limit int) ([]*models.AdminUser, int64, error)
}

// AgentRepository defines agent data access
type AgentRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Agent, error)
	GetByEmail(ctx context.Context, email string) (*models.Agent, error)
	Create(ctx context.Context, agent *models.Agent) error
	List(ctx context.Context, offset, limit int) ([]*models.Agent, int64, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
	UpdatePasswordHash(ctx context.Context, id primitive.ObjectID, hash string) error
	UpdateEarnings(ctx context.Context, id primitive.ObjectID, totalShops int64, totalEarnings float64) error
}

// OperatorRepository defines operator data access.
// GetActiveByID models immediate deauthorization: an inactive operator
// resolves as not found even when its token is still valid.
type OperatorRepository interface {
	GetActiveByID(ctx context.Context, id primitive.ObjectID) (*models.Operator, error)
	GetByPhone(ctx context.Context, phone string) (*models.Operator, error)
	Create(ctx context.Context, operator *models.Operator) error
	List(ctx context.Context, offset, limit int) ([]*models.Operator, int64, error)
	SetActive(ctx context.Context, id primitive.ObjectID, active bool) error
}

// ShopRepository defines listing data access across the three shop
// collections (admin, legacy, agent)
type ShopRepository interface {
	Create(ctx context.Context, shop *models.Shop) error
	CreateAgentShop(ctx context.Context, shop *models.Shop) error
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, error)
	FindAnyByID(ctx context.Context, id primitive.ObjectID) (*models.Shop, string, error)
	List(ctx context.Context, offset, limit int) ([]*models.Shop, int64, error)
	ListVisible(ctx context.Context, offset, limit int) ([]*models.Shop, int64, error)
	ListByAgent(ctx context.Context, agentID primitive.ObjectID) ([]*models.Shop, error)
	ListPaidByAgent(ctx context.Context, agentID primitive.ObjectID) ([]*models.Shop, error)
	Update(ctx context.Context, shop *models.Shop) error
	Delete(ctx context.Context, id primitive.ObjectID) error
	MarkPaid(ctx context.Context, id primitive.ObjectID, kind string) error
	SetVisibility(ctx context.Context, id primitive.ObjectID, kind string, visible bool) error
	IncrementVisits(ctx context.Context, id primitive.ObjectID) (string, error)
}

// PageRepository defines CMS page data access
type PageRepository interface {
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Page, error)
	GetBySlug(ctx context.Context, slug string) (*models.Page, error)
	SlugExists(ctx context.Context, slug string) (bool, error)
	Create(ctx context.Context, page *models.Page) error
	List(ctx context.Context, offset, limit int) ([]*models.Page, int64, error)
	Update(ctx context.Context, page *models.Page) error
	Delete(ctx context.Context, id primitive.ObjectID) error
}

// OTPRepository defines one-time code data access
type OTPRepository interface {
	Create(ctx context.Context, otp *models.OTP) error
	GetByEmail(ctx context.Context, email string) (*models.OTP, error)
	DeleteByEmail(ctx context.Context, email string) error
}
