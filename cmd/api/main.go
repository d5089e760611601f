package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"

	"github.com/guideport/backend/internal/config"
	"github.com/guideport/backend/internal/database"
	"github.com/guideport/backend/internal/database/migrations"
	"github.com/guideport/backend/internal/handlers"
	"github.com/guideport/backend/internal/jobs"
	"github.com/guideport/backend/internal/middleware"
	"github.com/guideport/backend/internal/queue"
	"github.com/guideport/backend/internal/routes"
	"github.com/guideport/backend/internal/services/booking"
	"github.com/guideport/backend/internal/services/commission"
	"github.com/guideport/backend/internal/services/guide"
	"github.com/guideport/backend/internal/services/kyc"
	"github.com/guideport/backend/internal/services/settlement"
	"github.com/guideport/backend/internal/services/stripepay"
	"github.com/guideport/backend/internal/services/whitelabel"
	"github.com/guideport/backend/internal/utils"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found")
	}

	cfg := config.LoadConfig()
	utils.ConfigureJWT(cfg.JWT.Secret, cfg.JWT.Expiration)

	// Setup database connection
	db, err := database.InitDB(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := migrations.RunMigrations(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	// Job queue
	jobQueue := queue.NewQueue(db)
	jobs.RegisterAllJobHandlers(jobQueue, db, cfg.Commission)
	go jobQueue.ProcessJobs()

	// Services
	commissionSvc := commission.NewService(db, redisClient, cfg.Commission, jobQueue)
	bookingSvc := booking.NewService(db, commissionSvc)
	guideSvc := guide.NewService(db)
	kycSvc := kyc.NewService(db)
	settlementSvc := settlement.NewService(db)
	stripeClient := stripepay.NewClient(cfg.Stripe.SecretKey)
	whitelabelSvc := whitelabel.NewService(db, stripeClient, cfg.Stripe)

	// Scheduled jobs
	scheduler := jobs.NewScheduler(commissionSvc, settlementSvc)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	rateLimiter := middleware.NewRateLimiter()
	defer rateLimiter.Stop()

	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
		AllowCredentials: true,
	}))

	routes.RegisterRoutes(router, routes.Handlers{
		Auth:       handlers.NewAuthHandler(db, guideSvc),
		Booking:    handlers.NewBookingHandler(bookingSvc),
		Guide:      handlers.NewGuideHandler(guideSvc, kycSvc),
		KYC:        handlers.NewKYCHandler(kycSvc),
		Commission: handlers.NewCommissionHandler(commissionSvc),
		Settlement: handlers.NewSettlementHandler(settlementSvc),
		WhiteLabel: handlers.NewWhiteLabelHandler(whitelabelSvc),
	}, rateLimiter)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	fmt.Printf("GuidePort API server running on port %s\n", cfg.Server.Port)
	if err := srv.ListenAndServe(); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
