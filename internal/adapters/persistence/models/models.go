package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ============================================================
// Principals
// ============================================================

// AdminUser represents a back-office user (role: admin or editor)
type AdminUser struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Name         string             `json:"name" bson:"name"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	Role         string             `json:"role" bson:"role"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updatedAt"`
}

// Agent represents a field agent who registers shops and earns commissions
type Agent struct {
	ID            primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code          string             `json:"code" bson:"code"`
	Name          string             `json:"name" bson:"name"`
	Email         string             `json:"email" bson:"email"`
	Phone         string             `json:"phone" bson:"phone"`
	PasswordHash  string             `json:"-" bson:"passwordHash"`
	IsActive      bool               `json:"is_active" bson:"isActive"`
	TotalShops    int64              `json:"total_shops" bson:"totalShops"`
	TotalEarnings float64            `json:"total_earnings" bson:"totalEarnings"`
	CreatedAt     time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time          `json:"updated_at" bson:"updatedAt"`
}

// Operator represents a field operator who manages listing visibility
type Operator struct {
	ID           primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Code         string             `json:"code" bson:"code"`
	Name         string             `json:"name" bson:"name"`
	Phone        string             `json:"phone" bson:"phone"`
	Email        string             `json:"email" bson:"email"`
	PasswordHash string             `json:"-" bson:"passwordHash"`
	IsActive     bool               `json:"is_active" bson:"isActive"`
	CreatedAt    time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt    time.Time          `json:"updated_at" bson:"updatedAt"`
}

// ============================================================
// Listings
// ============================================================

// Shop represents a business listing. The same document shape is stored in
// three collections (admin shops, legacy shops, agent shops); AgentID is set
// only on agent-registered shops.
type Shop struct {
	ID            primitive.ObjectID  `json:"id,omitempty" bson:"_id,omitempty"`
	Name          string              `json:"name" bson:"name"`
	Category      string              `json:"category" bson:"category"`
	Address       string              `json:"address" bson:"address"`
	Phone         string              `json:"phone" bson:"phone"`
	AgentID       *primitive.ObjectID `json:"agent_id,omitempty" bson:"agentId,omitempty"`
	PaymentStatus string              `json:"payment_status" bson:"paymentStatus"`
	Amount        float64             `json:"amount" bson:"amount"`
	ExpiryDate    time.Time           `json:"expiry_date" bson:"expiryDate"`
	IsVisible     bool                `json:"is_visible" bson:"isVisible"`
	Visits        int64               `json:"visits" bson:"visits"`
	CreatedAt     time.Time           `json:"created_at" bson:"createdAt"`
	UpdatedAt     time.Time           `json:"updated_at" bson:"updatedAt"`
}

// IsExpired reports whether the listing is past its expiry date
func (s *Shop) IsExpired() bool {
	return time.Now().After(s.ExpiryDate)
}

// Page represents a CMS page with a unique slug
type Page struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	Title     string             `json:"title" bson:"title"`
	Slug      string             `json:"slug" bson:"slug"`
	Body      string             `json:"body" bson:"body"`
	Published bool               `json:"published" bson:"published"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time          `json:"updated_at" bson:"updatedAt"`
}

// OTP represents a one-time password reset code.
// Documents auto-expire through the TTL index on expiresAt.
type OTP struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	RequestID string             `json:"request_id" bson:"requestId"`
	Email     string             `json:"email" bson:"email"`
	Code      string             `json:"-" bson:"code"`
	ExpiresAt time.Time          `json:"expires_at" bson:"expiresAt"`
	CreatedAt time.Time          `json:"created_at" bson:"createdAt"`
}

// IsExpired reports whether the code has expired (the TTL index lags)
func (o *OTP) IsExpired() bool {
	return time.Now().After(o.ExpiresAt)
}
