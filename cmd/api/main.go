package main

import (
	"log"
	"os"
	"time"

	"github.com/beintransports/booking-api/internal/database"
	"github.com/beintransports/booking-api/internal/handlers"
	"github.com/beintransports/booking-api/internal/middleware"
	"github.com/beintransports/booking-api/internal/services"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, relying on environment")
	}

	db, err := database.InitDB()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	// Get underlying SQL DB instance
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get database instance: %v", err)
	}

	// Configure connection pool
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetMaxOpenConns(100)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := database.Seed(db); err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	// Initialize Redis
	if err := services.InitRedis(); err != nil {
		log.Fatalf("Failed to initialize Redis: %v", err)
	}

	// Initialize Storage (S3 or local fallback)
	if err := services.InitStorage(); err != nil {
		log.Fatalf("Failed to initialize storage: %v", err)
	}

	// Payment gateway
	gateway := services.NewStripeGateway()

	// Initialize WebSocket hub
	hub := services.NewHub()
	go hub.Run()

	// Initialize router
	r := gin.Default()

	// Configure CORS
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", "Stripe-Signature"}
	r.Use(cors.New(config))

	// Serve locally stored uploads
	r.Static("/uploads", "/app/uploads")

	// Routes
	api := r.Group("/api")
	{
		// Public routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", handlers.Register(db))
			auth.POST("/login", handlers.Login(db))
		}

		api.GET("/vehicles", handlers.GetVehicles(db))
		api.GET("/vehicles/:id", handlers.GetVehicle(db))
		api.GET("/pricing/estimate", handlers.GetPriceEstimate(db))

		// Gateway webhook: no auth, signature-verified
		api.POST("/payments/webhook", handlers.PaymentWebhook(db, gateway, hub))

		// WebSocket connection
		api.GET("/ws", middleware.AuthMiddleware(), handlers.WebSocketHandler(hub))

		// Protected routes
		protected := api.Group("/")
		protected.Use(middleware.AuthMiddleware())
		{
			protected.GET("/auth/me", handlers.GetMe(db))
			protected.PUT("/auth/me", handlers.UpdateMe(db))

			bookings := protected.Group("/bookings")
			{
				bookings.POST("", handlers.CreateBooking(db))
				bookings.GET("", handlers.GetBookings(db))
				bookings.GET("/:id", handlers.GetBooking(db))
				bookings.PUT("/:id", handlers.UpdateBooking(db))
				bookings.PUT("/:id/cancel", handlers.CancelBooking(db, hub))
			}

			payments := protected.Group("/payments")
			{
				payments.POST("/create-intent/:id", handlers.CreatePaymentIntent(db, gateway))
				payments.POST("/confirm/:id", handlers.ConfirmPayment(db, gateway, hub))
			}

			// Admin routes
			admin := protected.Group("/")
			admin.Use(middleware.AdminOnly())
			{
				users := admin.Group("/users")
				{
					users.GET("", handlers.GetUsers(db))
					users.GET("/:id", handlers.GetUser(db))
					users.PUT("/:id", handlers.UpdateUser(db))
					users.DELETE("/:id", handlers.DeleteUser(db))
				}

				vehicles := admin.Group("/vehicles")
				{
					vehicles.POST("", handlers.CreateVehicle(db))
					vehicles.PUT("/:id", handlers.UpdateVehicle(db))
					vehicles.DELETE("/:id", handlers.DeleteVehicle(db))
					vehicles.POST("/:id/image", handlers.UploadVehicleImage(db))
				}
			}
		}
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
