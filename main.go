package main

import (
	"os"

	"github.com/joho/godotenv"

	"github.com/cafe-eden/pos-app/config"
	"github.com/cafe-eden/pos-app/models"
	"github.com/cafe-eden/pos-app/router"
	"github.com/cafe-eden/pos-app/services"
	"github.com/cafe-eden/pos-app/utils"
)

func main() {
	utils.InitLogger()
	if err := godotenv.Load(); err != nil {
		utils.InfoLogger.Println("No .env file found, using process environment")
	}

	db, err := config.InitDB()
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}

	err = db.AutoMigrate(
		&models.User{},
		&models.Category{},
		&models.MenuItem{},
		&models.MenuItemVariant{},
		&models.Ingredient{},
		&models.Recipe{},
		&models.Stock{},
		&models.Discount{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.PaymentLog{},
		&models.BakongTransaction{},
		&models.Setting{},
		&models.Notification{},
		&models.Banner{},
	)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to migrate database: %v", err)
	}

	stock := services.NewStockService(config.AllowOversell())
	orders := services.NewOrderService(db, stock)
	bakong := services.GetBakongService()
	verifier := services.NewBakongVerifier(db, bakong, orders)

	if err := bakong.ValidateConfig(); err != nil {
		utils.InfoLogger.Printf("Bakong verifier disabled: %v", err)
	} else {
		verifier.Start()
		defer verifier.Stop()
	}

	scheduler := services.NewNotificationScheduler(db)
	scheduler.Start()
	defer scheduler.Stop()

	r := router.SetupRouter(db, orders, bakong, verifier)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	utils.InfoLogger.Printf("Server starting on port %s", port)
	if err := r.Run(":" + port); err != nil {
		utils.ErrorLogger.Fatalf("Server stopped: %v", err)
	}
}
