package config

import (
	"os"
	"time"

	"scannsave-backend/internal/api/handlers"
	"scannsave-backend/internal/api/routes"
	"scannsave-backend/internal/middleware"
	"scannsave-backend/internal/utils"
	"scannsave-backend/internal/utils/storage"
	"scannsave-backend/pkg/jwt"
	"scannsave-backend/pkg/product"
	"scannsave-backend/pkg/receipt"
	"scannsave-backend/pkg/shop"
	"scannsave-backend/pkg/stats"
	"scannsave-backend/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "Europe/Warsaw",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// Repository
	userRepository := user.NewUserRepository(db)
	shopRepository := shop.NewShopRepository(db)
	productRepository := product.NewProductRepository(db)
	receiptRepository := receipt.NewReceiptRepository(db)
	statsRepository := stats.NewStatsRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService)
	shopService := shop.NewShopService(shopRepository)
	productService := product.NewProductService(productRepository)
	receiptService := receipt.NewReceiptService(receiptRepository, userService, shopService, productService, s3)
	statsService := stats.NewStatsService(statsRepository, userService)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	receiptHandler := handlers.NewReceiptHandler(receiptService, validator)
	shopHandler := handlers.NewShopHandler(shopService)
	statsHandler := handlers.NewStatsHandler(statsService)

	// routes
	routesConfig := routes.Config{
		App:            app,
		UserHandler:    userHandler,
		ReceiptHandler: receiptHandler,
		ShopHandler:    shopHandler,
		StatsHandler:   statsHandler,
		Middleware:     middlewares,
		JWTService:     jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
