package domain

import "errors"

// Common domain errors
var (
	ErrNotFound           = errors.New("resource not found")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("forbidden")
	ErrInternalServer     = errors.New("internal server error")
	ErrDuplicateEntry     = errors.New("duplicate entry")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenExpired       = errors.New("token expired")
	ErrTokenInvalid       = errors.New("token invalid")
)

// Principal errors
var (
	ErrAdminNotFound    = errors.New("admin user not found")
	ErrAgentNotFound    = errors.New("agent not found")
	ErrOperatorNotFound = errors.New("operator not found")
	ErrAccountInactive  = errors.New("account is inactive")
)

// Shop errors
var (
	ErrShopNotFound    = errors.New("shop not found")
	ErrShopAlreadyPaid = errors.New("shop payment already confirmed")
)

// Page errors
var (
	ErrPageNotFound = errors.New("page not found")
	ErrSlugTaken    = errors.New("slug already in use")
)

// OTP errors
var (
	ErrOTPNotFound = errors.New("otp not found or expired")
	ErrOTPMismatch = errors.New("otp code does not match")
)
