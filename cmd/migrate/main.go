package main

import (
	"log"

	"auction-desk-be/internal/config"
	"auction-desk-be/internal/model"
	"auction-desk-be/pkg/database"

	"github.com/fatih/color"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// 1. Load Configuration
	cfg := config.Load()

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(cfg.Database.Connection)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting GORM Migration...")

	// 3. AutoMigrate All Models
	models := []interface{}{
		&model.User{},
		&model.Lot{},
		&model.Buyer{},
		&model.BidEntry{},
		&model.PacingRecord{},
		&model.AuctionSession{},
		&model.LotImage{},
		&model.OperationLog{},
	}

	if err := db.AutoMigrate(models...); err != nil {
		log.Fatal("Error: AutoMigrate failed:", err)
	}
	color.Green("Migrated %d tables", len(models))

	// 4. Seed the bootstrap admin account if it does not exist yet
	var count int64
	if err := db.Model(&model.User{}).
		Where("username = ?", cfg.Auth.AdminUsername).
		Count(&count).Error; err != nil {
		log.Fatal("Error: Failed to check admin account:", err)
	}
	if count > 0 {
		color.Yellow("Admin account %q already exists, skipping seed", cfg.Auth.AdminUsername)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(cfg.Auth.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Error: Failed to hash admin password:", err)
	}
	admin := &model.User{
		Username:     cfg.Auth.AdminUsername,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := db.Create(admin).Error; err != nil {
		log.Fatal("Error: Failed to seed admin account:", err)
	}
	color.Green("Seeded admin account %q", cfg.Auth.AdminUsername)
}
