package domain

// Roles recognized by the authorization layer
const (
	RoleAdmin    = "admin"
	RoleEditor   = "editor"
	RoleOperator = "operator"
	RoleAgent    = "agent"
)

// Shop payment statuses
const (
	PaymentPending = "PENDING"
	PaymentPaid    = "PAID"
)

// Shop kinds, in visit-counter resolution order
const (
	ShopKindAdmin  = "admin"
	ShopKindLegacy = "legacy"
	ShopKindAgent  = "agent"
)
