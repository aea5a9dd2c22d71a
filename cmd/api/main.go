package main

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tourcraft/tourcraft-api/internal/config"
	"github.com/tourcraft/tourcraft-api/internal/database"
	"github.com/tourcraft/tourcraft-api/internal/handlers"
	"github.com/tourcraft/tourcraft-api/internal/logging"
	"github.com/tourcraft/tourcraft-api/internal/metrics"
	"github.com/tourcraft/tourcraft-api/internal/middleware"
	"github.com/tourcraft/tourcraft-api/internal/services"
	"github.com/tourcraft/tourcraft-api/internal/store"
	"github.com/tourcraft/tourcraft-api/internal/utils"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)
	metrics.Register()

	// --- Database Connection ---
	ctx := context.Background()
	db, disconnect, err := database.Connect(ctx, cfg.MongoURI, cfg.MongoDatabase)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect to MongoDB")
	}
	defer func() {
		if err := disconnect(ctx); err != nil {
			logger.Error().Err(err).Msg("mongo disconnect")
		}
	}()
	if err := database.EnsureIndexes(ctx, db); err != nil {
		logger.Fatal().Err(err).Msg("failed to create indexes")
	}
	logger.Info().Str("database", cfg.MongoDatabase).Msg("connected to MongoDB")

	// --- Stores and Services ---
	tokens := utils.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	userStore := store.NewMongoUserStore(db)
	tourStore := store.NewMongoTourStore(db)
	bookingStore := store.NewMongoBookingStore(db)
	reviewStore := store.NewMongoReviewStore(db)

	h := handlers.NewHandler(
		services.NewUserService(userStore, tokens),
		services.NewTourService(tourStore),
		services.NewBookingService(bookingStore, tourStore),
		services.NewReviewService(reviewStore),
		logger,
	)

	// --- Gin Router ---
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLog(logger))
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
	}))

	auth := middleware.Authenticate(tokens)
	admin := middleware.RequireAdmin()
	authLimit := middleware.RateLimit(cfg.AuthRateRPS, cfg.AuthRateBurst)

	// --- Routes ---
	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	authRoutes := r.Group("/auth", authLimit)
	{
		authRoutes.POST("/register", h.Register)
		authRoutes.POST("/login", h.Login)
	}

	userRoutes := r.Group("/users")
	{
		userRoutes.POST("/first-admin", h.CreateFirstAdmin) // open, succeeds once
		userRoutes.GET("", auth, h.GetUsers)
		userRoutes.POST("", auth, h.CreateUser)
		userRoutes.PUT("/change-password", auth, h.ChangePassword)
		userRoutes.POST("/admin", auth, admin, h.CreateAdmin)
		userRoutes.POST("/create-user", auth, admin, h.CreateUserByAdmin)
		userRoutes.DELETE("/admins", auth, admin, h.DeleteAllAdmins)
		userRoutes.DELETE("/:id", auth, admin, h.DeleteUser)
	}

	profileRoutes := r.Group("/profile", auth)
	{
		profileRoutes.GET("", h.GetProfile)
		profileRoutes.PUT("", h.UpdateProfile)
	}

	tourRoutes := r.Group("/tours", auth)
	{
		tourRoutes.GET("", h.GetTours)
		tourRoutes.GET("/:id", h.GetTour)
		tourRoutes.POST("", h.CreateTour)
		tourRoutes.PUT("/:id", h.UpdateTour)
		tourRoutes.DELETE("/:id", h.DeleteTour)
	}

	bookingRoutes := r.Group("/bookings", auth)
	{
		bookingRoutes.GET("/all", admin, h.GetAllBookings)
		bookingRoutes.GET("", h.GetBookings)
		bookingRoutes.GET("/:id", h.GetBooking)
		bookingRoutes.POST("", h.CreateBooking)
		bookingRoutes.PUT("/:id", h.UpdateBooking)
		bookingRoutes.DELETE("/:id", h.DeleteBooking)
	}

	reviewRoutes := r.Group("/reviews")
	{
		reviewRoutes.POST("", auth, h.CreateReview)
		reviewRoutes.GET("/tour/:tourId", h.GetReviewsForTour)
		reviewRoutes.DELETE("/:id", auth, h.DeleteReview)
	}

	logger.Info().Str("port", cfg.Port).Msg("starting server")
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Fatal().Err(err).Msg("server stopped")
	}
}
