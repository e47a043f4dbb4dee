package database

import (
	"fmt"
	"log"

	"tracker/config"
	"tracker/models"
	"tracker/utils"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// InitDB initializes the database connection and migrates the models and populates the database with default values if needed
func InitDB() {
	dsn := fmt.Sprintf("host=%s port=%s user=%s dbname=%s password=%s sslmode=disable TimeZone=Australia/Sydney", config.PostgresHost, config.PostgresPort, config.PostgresUser, config.PostgresDB, config.PostgresPassword)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect database: ", err)
	}

	if err := Migrate(DB); err != nil {
		log.Fatal("failed to migrate database: ", err)
	}

	Populate()
}

// Migrate applies the schema for every entity. Shared with the test setup,
// which runs the same models against an in-memory database.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Problem{},
		&models.Solution{},
		&models.StatusUpdate{},
	)
}

// Populate creates a default account when the database is empty so the API is
// usable right after first boot
func Populate() {
	var countUser int64
	DB.Model(&models.User{}).Count(&countUser)
	if countUser != 0 {
		return
	}
	if config.DefaultPassword == "" {
		log.Println("No DEFAULT_PASSWORD configured, skipping default account creation")
		return
	}

	password, err := utils.HashPassword(config.DefaultPassword)
	if err != nil {
		panic(err)
	}

	user := models.User{
		Email:    "admin@admin.com",
		Password: password,
	}
	DB.Create(&user)
	log.Println("Default user admin created")
}
