package database

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/ssvp-lar/ilpi-backend/internal/config"
	"github.com/ssvp-lar/ilpi-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdminUser creates the protected default management account when no
// user with that username exists yet.
func SeedAdminUser(db *gorm.DB, cfg *config.Config) error {
	username := strings.ToLower(strings.TrimSpace(cfg.AdminUsername))

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", username).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check for admin user: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := models.User{
		ID:          uuid.New(),
		Username:    username,
		FullName:    "Administrador Padrão",
		Role:        "TI / Gestão",
		AccessLevel: "gerencial",
		Password:    string(hash),
		Protected:   true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	slog.Info("default admin user seeded", "username", username)
	return nil
}
