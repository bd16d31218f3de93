package database

import (
	"log"
	"os"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"

	"smartdues/models"
)

var DB *gorm.DB

func ConnectDatabase() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "smartdues.db?_pragma=foreign_keys(1)"
	}

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect database: ", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.Bill{},
		&models.Payment{},
		&models.ReminderLog{},
	); err != nil {
		log.Fatal("Failed to migrate database: ", err)
	}

	DB = db
}
