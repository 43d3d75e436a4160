// scripts/create_admin.go
package main

import (
	"fmt"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/vipulsahu063/PSMSystem/config"
	"github.com/vipulsahu063/PSMSystem/database"
	"github.com/vipulsahu063/PSMSystem/models"
)

func main() {
	cfg := config.Load()
	database.Connect(cfg)

	username := getenvOr("ADMIN_USERNAME", "admin")
	password := getenvOr("ADMIN_PASSWORD", "ChangeMe@123")

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var existing models.Admin
	if err := database.DB.Where("username = ?", username).First(&existing).Error; err != nil {
		if err != gorm.ErrRecordNotFound {
			log.Fatalf("failed to query admins: %v", err)
		}
	} else {
		fmt.Println("admin user already exists with username:", username)
		os.Exit(0)
	}

	a := models.Admin{
		Username:     username,
		PasswordHash: string(hashed),
		Name:         "Administrator",
	}
	if err := database.DB.Create(&a).Error; err != nil {
		log.Fatalf("failed to insert admin: %v", err)
	}

	fmt.Println("admin user created")
	fmt.Println("   Username:", username)
	fmt.Println("   Password:", password, "(change it after first login)")
}

func getenvOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
