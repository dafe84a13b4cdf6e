package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"guestboard/config"
	"guestboard/handlers"
	"guestboard/middleware"
	"guestboard/services"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found")
	}

	// Initialize structured logger
	logHandler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	})
	slog.SetDefault(slog.New(logHandler))

	// Load configuration
	cfg := config.LoadConfig()

	// Initialize MongoDB
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	db, err := services.InitMongoDB(ctx, cfg.MongoURI)
	if err != nil {
		slog.Error("Failed to connect to MongoDB", "error", err)
		os.Exit(1)
	}
	defer db.Disconnect(ctx)

	// Initialize services
	services.InitServices(db, cfg.DatabaseName)

	// Start hourly background cleanup of expired sessions
	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	services.StartSessionCleanup(cleanupCtx, time.Hour)

	// Create Fiber app
	app := fiber.New(fiber.Config{
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			if e, ok := err.(*fiber.Error); ok {
				code = e.Code
			}
			slog.Error("Request error", "error", err, "status", code)
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	// Middleware
	app.Use(recover.New())

	// CORS configuration - Allow frontend development server
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "http://localhost:5173, http://localhost:3000",
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		AllowCredentials: true,
		ExposeHeaders:    "Content-Length, Content-Type",
		MaxAge:           86400, // 24 hours
	}))

	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${method} ${path}\n",
	}))

	// Account routes
	auth := app.Group("/auth")
	auth.Post("/register", handlers.Register)
	auth.Post("/login", handlers.Login)
	auth.Post("/logout", handlers.Logout)
	auth.Get("/me", middleware.RequireAuth, handlers.GetCurrentUser)
	auth.Get("/check", handlers.CheckSession)

	// Social connection OAuth flows (protected inside)
	handlers.RegisterOAuthRoutes(app, cfg)

	// API endpoints (protected)
	api := app.Group("/api", middleware.RequireAuth)

	// Profile
	api.Get("/profile", handlers.GetProfile)
	api.Put("/profile", handlers.UpdateProfile)
	api.Get("/connections", handlers.GetConnections)
	api.Delete("/connections/:platform", handlers.DisconnectPlatform)

	// Events
	api.Post("/events", handlers.CreateEvent)
	api.Get("/events", handlers.GetEvents)
	api.Get("/events/:eventID", handlers.GetEvent)
	api.Put("/events/:eventID", handlers.UpdateEvent)
	api.Delete("/events/:eventID", handlers.DeleteEvent)

	// Guest lists
	api.Post("/events/:eventID/guests/upload", handlers.UploadGuestList)
	api.Get("/events/:eventID/guests", handlers.GetEventGuests)
	api.Delete("/events/:eventID/guests", handlers.DeleteEventGuests)
	api.Get("/guest-list-files", handlers.GetGuestListFiles)

	// Analytics
	api.Get("/dashboard/analytics", handlers.GetDashboardAnalytics)
	api.Get("/events/:eventID/analytics", handlers.GetEventAnalytics)

	// Health check
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "guestboard",
		})
	})

	// Start server
	slog.Info("Server starting", "port", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		slog.Error("Server failed to start", "error", err)
		os.Exit(1)
	}
}
