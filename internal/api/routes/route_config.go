package routes

import (
	"scannsave-backend/internal/api/handlers"
	"scannsave-backend/internal/middleware"
	"scannsave-backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App            *fiber.App
	UserHandler    handlers.UserHandler
	ReceiptHandler handlers.ReceiptHandler
	ShopHandler    handlers.ShopHandler
	StatsHandler   handlers.StatsHandler
	Middleware     middleware.Middleware
	JWTService     jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Receipts()
	c.Shops()
	c.Stats()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
	}
}

func (c *Config) Receipts() {
	receipts := c.App.Group("/api/v1/receipts", c.Middleware.AuthMiddleware(c.JWTService))

	receipts.Post("", c.ReceiptHandler.SaveReceipt)
	receipts.Get("", c.ReceiptHandler.GetReceipts)
	receipts.Get("/date-range", c.ReceiptHandler.GetReceiptsByDateRange)
	receipts.Get("/:id", c.ReceiptHandler.GetReceiptDetails)
	receipts.Delete("/:id", c.ReceiptHandler.DeleteReceipt)

	// Special operations
	receipts.Post("/:id/share", c.ReceiptHandler.ShareReceipt)
	receipts.Post("/:id/picture", c.ReceiptHandler.UploadReceiptPicture)
}

func (c *Config) Shops() {
	shops := c.App.Group("/api/v1/shops", c.Middleware.AuthMiddleware(c.JWTService))
	shops.Get("", c.ShopHandler.GetShops)
}

func (c *Config) Stats() {
	stats := c.App.Group("/api/v1/stats", c.Middleware.AuthMiddleware(c.JWTService))
	stats.Get("/categories", c.StatsHandler.ExpensesByCategory)
	stats.Get("/shops", c.StatsHandler.ExpensesByShop)
	stats.Get("/months", c.StatsHandler.ExpensesByMonth)
	stats.Get("/summary", c.StatsHandler.TotalExpenseSummary)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong, its works"})
	})
}
