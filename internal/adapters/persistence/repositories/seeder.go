package repositories

import (
	"context"
	"errors"
	"log"

	"shoplocal-api/internal/adapters/persistence/models"
	"shoplocal-api/internal/config"
	"shoplocal-api/internal/core/domain"
	"shoplocal-api/internal/pkg/password"
)

// Seeder handles database seeding through the repository layer
type Seeder struct {
	adminRepo AdminUserRepository
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *config.Database) *Seeder {
	return &Seeder{adminRepo: NewAdminUserRepository(db)}
}

// Run executes all seeders
func (s *Seeder) Run(ctx context.Context) error {
	log.Println("Running database seeders...")

	if err := s.seedAdminUser(ctx); err != nil {
		log.Printf("Warning: admin seeder skipped: %v", err)
	}

	log.Println("Database seeding completed")
	return nil
}

// seedAdminUser seeds a default admin user.
// This is for development/testing only; in production, create the first
// admin through a secure process.
func (s *Seeder) seedAdminUser(ctx context.Context) error {
	if _, err := s.adminRepo.GetByEmail(ctx, "admin@shoplocal.example.com"); err == nil {
		return nil // Admin already exists
	} else if !errors.Is(err, domain.ErrAdminNotFound) {
		return err
	}

	hashedPassword, err := password.Hash("admin123456")
	if err != nil {
		return err
	}

	admin := &models.AdminUser{
		Name:         "Administrator",
		Email:        "admin@shoplocal.example.com",
		PasswordHash: hashedPassword,
		Role:         domain.RoleAdmin,
	}

	if err := s.adminRepo.Create(ctx, admin); err != nil {
		return err
	}

	log.Println("Seeded default admin user (change the password!)")
	return nil
}
