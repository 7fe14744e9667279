// Command seed bootstraps a fresh deployment: the admin user, the
// verification settings row, and the initial tracked token.
package main

import (
	"log"
	"os"

	"aurum/internal/config"
	"aurum/internal/models"
	"aurum/internal/repositories"

	"golang.org/x/crypto/bcrypt"
)

func main() {
	config.LoadEnv()

	adminEmail := os.Getenv("ADMIN_EMAIL")
	adminPassword := os.Getenv("ADMIN_PASSWORD")
	depositAddress := os.Getenv("DEPOSIT_ADDRESS")

	if adminEmail == "" || adminPassword == "" || depositAddress == "" {
		log.Fatal("ADMIN_EMAIL, ADMIN_PASSWORD, and DEPOSIT_ADDRESS must be set in environment")
	}

	if err := repositories.InitDB(); err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	seedAdmin(adminEmail, adminPassword)
	seedSettings(depositAddress)
	seedToken()
}

func seedAdmin(email, password string) {
	var existing models.User
	if err := repositories.DB.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Println("Admin user already exists")
		return
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Fatal("Failed to hash password:", err)
	}

	admin := models.User{
		Email:    email,
		Password: string(hashed),
		Name:     "Administrator",
		Role:     "admin",
	}
	if err := repositories.DB.Create(&admin).Error; err != nil {
		log.Fatal("Failed to create admin user:", err)
	}
	log.Println("Admin user created")
}

func seedSettings(depositAddress string) {
	var existing models.Settings
	if err := repositories.DB.First(&existing).Error; err == nil {
		log.Println("Settings already exist")
		return
	}

	settings := models.Settings{
		DepositAddress:     depositAddress,
		MinPayment:         config.GetFloatEnv("MIN_PAYMENT", 1),
		PaymentAssetCode:   os.Getenv("PAYMENT_ASSET_CODE"),
		PaymentAssetIssuer: os.Getenv("PAYMENT_ASSET_ISSUER"),
	}
	if err := repositories.DB.Create(&settings).Error; err != nil {
		log.Fatal("Failed to create settings:", err)
	}
	log.Println("Settings created")
}

func seedToken() {
	code := os.Getenv("TOKEN_CODE")
	issuer := os.Getenv("TOKEN_ISSUER")
	if code == "" || issuer == "" {
		log.Println("TOKEN_CODE/TOKEN_ISSUER not set, skipping token seed")
		return
	}

	var existing models.Token
	if err := repositories.DB.Where("code = ? AND issuer = ?", code, issuer).First(&existing).Error; err == nil {
		log.Println("Token already exists")
		return
	}

	token := models.Token{
		Code:     code,
		Issuer:   issuer,
		Name:     os.Getenv("TOKEN_NAME"),
		IsActive: true,
	}
	if err := repositories.DB.Create(&token).Error; err != nil {
		log.Fatal("Failed to create token:", err)
	}
	log.Println("Token created")
}
