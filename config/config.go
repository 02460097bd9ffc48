package config

import (
	"fmt"
	"log"
	"os"

	"github.com/vishnukbarath/sharedtodo/models"

	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// InitDB loads the environment, opens the Postgres connection and runs
// migrations. The returned handle is the single storage instance for the
// process; callers pass it down explicitly rather than reading a global.
func InitDB() *gorm.DB {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file, relying on environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	// TranslateError surfaces unique-index violations as
	// gorm.ErrDuplicatedKey; the pairing invariants depend on it.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("AutoMigrate failed: %v", err)
	}

	return db
}

// Migrate is split out so tests can run the same schema against SQLite.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Couple{},
		&models.CoupleMember{},
		&models.Todo{},
		&models.Comment{},
		&models.ActivityLog{},
		&models.UserDevice{},
	)
}
