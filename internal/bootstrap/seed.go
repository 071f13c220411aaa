package bootstrap

import (
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"questlab.io/studiosite/internal/entity"
)

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.AdminUser{},
		&entity.SiteSettings{},
		&entity.Course{},
		&entity.Game{},
		&entity.JobPosting{},
		&entity.ContactMessage{},
		&entity.Inquiry{},
		&entity.ResumeSubmission{},
	)
}

// SeedSettings creates the settings row if none exists. The row is a
// singleton: the guard keeps repeated boots from inserting a second one.
func SeedSettings(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.SiteSettings{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	settings := entity.SiteSettings{
		Email:         "hello@questlab.studio",
		ContactNumber: "+977-1-5555555",
		Location:      "Kathmandu, Nepal",
	}
	if err := db.Create(&settings).Error; err != nil {
		return err
	}

	log.Println("Site settings seeded")
	return nil
}

// SeedAdminUser creates the initial admin from SEED_ADMIN_EMAIL and
// SEED_ADMIN_PASSWORD. Skipped when the variables are unset or the admin
// already exists.
func SeedAdminUser(db *gorm.DB) error {
	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		return nil
	}

	var count int64
	if err := db.Model(&entity.AdminUser{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Admin user already exists, skipping seed")
		return nil
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.AdminUser{
		Email:        email,
		PasswordHash: string(hashed),
		IsActive:     true,
	}
	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Printf("Admin user seeded: %s", email)
	return nil
}
