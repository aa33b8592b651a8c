package services

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math/big"
	"time"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/adapters/persistence/repositories"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/pkg/password"

	"github.com/google/uuid"
)

// OTPValidity is how long a reset code stays usable
const OTPValidity = 5 * time.Minute

// OTPService handles agent password reset via one-time codes
type OTPService struct {
	otpRepo   repositories.OTPRepository
	agentRepo repositories.AgentRepository
}

// NewOTPService creates a new OTP service
func NewOTPService(otpRepo repositories.OTPRepository, agentRepo repositories.AgentRepository) *OTPService {
	return &OTPService{
		otpRepo:   otpRepo,
		agentRepo: agentRepo,
	}
}

// RequestReset issues a reset code for an agent email. The code is stored
// with a TTL and delivered out-of-band by the SMS/email provider; only the
// request id is returned to the caller.
func (s *OTPService) RequestReset(ctx context.Context, email string) (string, error) {
	agent, err := s.agentRepo.GetByEmail(ctx, email)
	if err != nil {
		return "", err
	}

	code, err := generateCode()
	if err != nil {
		return "", err
	}

	otp := &models.OTP{
		RequestID: uuid.New().String(),
		Email:     agent.Email,
		Code:      code,
		ExpiresAt: time.Now().Add(OTPValidity),
	}

	if err := s.otpRepo.Create(ctx, otp); err != nil {
		return "", err
	}

	log.Printf("OTP issued for %s (request %s)", agent.Email, otp.RequestID)
	return otp.RequestID, nil
}

// VerifyReset checks a code and, on match, replaces the agent's password
func (s *OTPService) VerifyReset(ctx context.Context, email, code, newPassword string) error {
	otp, err := s.otpRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	if otp.IsExpired() {
		return domain.ErrOTPNotFound
	}
	if otp.Code != code {
		return domain.ErrOTPMismatch
	}

	agent, err := s.agentRepo.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	hash, err := password.Hash(newPassword)
	if err != nil {
		return err
	}

	if err := s.agentRepo.UpdatePasswordHash(ctx, agent.ID, hash); err != nil {
		return err
	}

	if err := s.otpRepo.DeleteByEmail(ctx, email); err != nil {
		log.Printf("Warning: failed to clear OTP for %s: %v", email, err)
	}

	log.Printf("Password reset for agent %s", agent.Code)
	return nil
}

// generateCode produces a 6-digit numeric code
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}
