package bootstrap

import (
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/stridewear/storefront/internal/hash"
	"github.com/stridewear/storefront/internal/models"
)

// EnsureAdmin creates the configured admin account if it does not
// exist yet. Safe to call on every startup.
func EnsureAdmin(db *gorm.DB, email, password, name string, log *slog.Logger) error {
	pwHash, err := hash.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: pwHash,
		IsAdmin:      true,
	}
	res := db.Where("email = ?", email).FirstOrCreate(&admin)
	if res.Error != nil {
		return fmt.Errorf("ensure admin account: %w", res.Error)
	}
	if res.RowsAffected > 0 {
		log.Info("admin_account_created", "email", email)
	}
	return nil
}
