package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/guideport/backend/internal/handlers"
	"github.com/guideport/backend/internal/middleware"
)

// Handlers bundles everything RegisterRoutes wires up
type Handlers struct {
	Auth       *handlers.AuthHandler
	Booking    *handlers.BookingHandler
	Guide      *handlers.GuideHandler
	KYC        *handlers.KYCHandler
	Commission *handlers.CommissionHandler
	Settlement *handlers.SettlementHandler
	WhiteLabel *handlers.WhiteLabelHandler
}

// RegisterRoutes registers all API routes
func RegisterRoutes(router *gin.Engine, h Handlers, rateLimiter *middleware.RateLimiter) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})

	// Auth routes run a tight per-IP budget to slow credential stuffing
	authGroup := router.Group("/api/auth")
	authGroup.Use(rateLimiter.Scope("auth", middleware.PerMinute(5, 10)))
	{
		authGroup.POST("/signup", h.Auth.Signup)
		authGroup.POST("/login", h.Auth.Login)
		authGroup.POST("/refresh", h.Auth.RefreshToken)
	}

	// Public storefront routes
	publicGroup := router.Group("/api/pages")
	publicGroup.Use(rateLimiter.Scope("public", middleware.PerSecond(10, 20)))
	{
		publicGroup.GET("/:slug", h.WhiteLabel.GetPublicPage)
		publicGroup.POST("/:slug/orders", h.WhiteLabel.RecordOrder)
	}

	// Guide portal routes
	guideGroup := router.Group("/api")
	guideGroup.Use(middleware.AuthMiddleware(), middleware.GuideMiddleware())
	{
		guideGroup.POST("/kyc/submit", h.KYC.Submit)
		guideGroup.GET("/kyc/status", h.KYC.Status)

		guideGroup.GET("/guide/dashboard", h.Commission.Dashboard)
		guideGroup.GET("/guide/commissions", h.Commission.List)
		guideGroup.GET("/guide/commissions/export", h.Commission.ExportCSV)
		guideGroup.GET("/guide/tiers", h.Commission.Tiers)
		guideGroup.GET("/guide/settlements", h.Settlement.ListMine)

		guideGroup.GET("/whitelabel/page", h.WhiteLabel.GetPage)
		guideGroup.PUT("/whitelabel/page", h.WhiteLabel.UpsertPage)
		guideGroup.POST("/whitelabel/create-subscription", h.WhiteLabel.CreateSubscription)
		guideGroup.POST("/whitelabel/sync-subscription", h.WhiteLabel.SyncSubscription)
		guideGroup.POST("/whitelabel/manage-subscription", h.WhiteLabel.CancelSubscription)
	}

	// Admin routes
	adminGroup := router.Group("/api/admin")
	adminGroup.Use(middleware.AuthMiddleware(), middleware.AdminMiddleware())
	{
		adminGroup.GET("/bookings", h.Booking.List)
		adminGroup.POST("/bookings", h.Booking.Create)
		adminGroup.GET("/bookings/:id", h.Booking.Get)
		adminGroup.POST("/bookings/:id/deposit-paid", h.Booking.MarkDepositPaid)
		adminGroup.POST("/bookings/:id/confirm", h.Booking.Confirm)
		adminGroup.POST("/bookings/:id/complete", h.Booking.Complete)
		adminGroup.POST("/bookings/:id/no-show", h.Booking.MarkNoShow)
		adminGroup.POST("/bookings/:id/cancel", h.Booking.Cancel)

		adminGroup.GET("/guides", h.Guide.List)
		adminGroup.POST("/guides", h.Guide.Create)
		adminGroup.GET("/guides/:id", h.Guide.Get)
		adminGroup.POST("/guides/:id/approve", h.Guide.Approve)
		adminGroup.POST("/guides/:id/suspend", h.Guide.Suspend)
		adminGroup.POST("/guides/:id/tier", h.Guide.SetTier)
		adminGroup.POST("/guides/:id/kyc/approve", h.KYC.Approve)
		adminGroup.POST("/guides/:id/kyc/reject", h.KYC.Reject)

		adminGroup.GET("/settlements", h.Settlement.List)
		adminGroup.POST("/settlements/aggregate", h.Settlement.Aggregate)
		adminGroup.POST("/settlements/:id/confirm", h.Settlement.Confirm)
		adminGroup.POST("/settlements/:id/mark-paid", h.Settlement.MarkPaid)
	}
}
