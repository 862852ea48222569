package config

import (
	"github.com/inamrestro/restaurant-app/models"
	"github.com/inamrestro/restaurant-app/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// SeedAdmin creates the staff account named by ADMIN_USERNAME/ADMIN_PASSWORD
// if it does not exist yet.
func SeedAdmin(db *gorm.DB, cfg *Config) error {
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		utils.InfoLogger.Println("skip seeding admin: ADMIN_USERNAME/ADMIN_PASSWORD not set")
		return nil
	}

	var count int64
	if err := db.Model(&models.User{}).Where("username = ?", cfg.AdminUsername).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		utils.InfoLogger.Printf("admin already exists: %s", cfg.AdminUsername)
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := models.User{
		Username: cfg.AdminUsername,
		Password: string(hash),
		IsStaff:  true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}
	utils.InfoLogger.Printf("seeded staff account %s", admin.Username)
	return nil
}
