package migration

import (
	"os"

	"github.com/google/uuid"
	"github.com/sahayak/sahayak-backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Run executes AutoMigrate for the users and subjects tables and seeds
// the bootstrap admin account if the users table is empty.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(&domain.User{}, &domain.Subject{}); err != nil {
		return err
	}

	var count int64
	db.Model(&domain.User{}).Count(&count)
	if count == 0 {
		return seedAdmin(db)
	}

	return nil
}

// seedAdmin creates the first admin account from environment variables.
// Without SAHAYAK_ADMIN_EMAIL and SAHAYAK_ADMIN_PASSWORD set, nothing is
// seeded and the first registered user must be promoted manually.
func seedAdmin(db *gorm.DB) error {
	email := os.Getenv("SAHAYAK_ADMIN_EMAIL")
	password := os.Getenv("SAHAYAK_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := domain.User{
		ID:          uuid.NewString(),
		Username:    "admin",
		Email:       email,
		DisplayName: "Administrator",
		Password:    string(hashed),
		Role:        domain.RoleAdmin,
	}

	return db.Create(&admin).Error
}
