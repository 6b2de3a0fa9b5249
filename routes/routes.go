package routes

import (
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"villa-backend/controllers"
	"villa-backend/middleware"
	"villa-backend/utils"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func cacheTTL() time.Duration {
	raw := utils.EnvOrDefault("CACHE_TTL_SECONDS", "300")
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		return 5 * time.Minute
	}
	return time.Duration(secs) * time.Second
}

// SetupRouter wires controllers onto the route tree.
func SetupRouter(
	bc *controllers.BookingController,
	avc *controllers.AvailabilityController,
	cc *controllers.CouponController,
	lc *controllers.LoyaltyController,
	ec *controllers.EmailController,
	hc *controllers.HostController,
	rdb *redis.Client,
) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())
	r.Static("/uploads", "./uploads")

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		// Public catalog. List responses are cacheable.
		properties := api.Group("/properties")
		{
			properties.GET("", middleware.ResponseCache(rdb, cacheTTL()), controllers.GetProperties)
			properties.GET("/:id", controllers.GetPropertyByID)
			properties.GET("/:id/availability", avc.GetMonthlyAvailability)
		}

		// Guest booking flow
		bookings := api.Group("/bookings")
		{
			bookings.POST("/quote", bc.QuoteBooking)
			bookings.POST("", bc.CreateBooking)
		}

		coupons := api.Group("/coupons")
		{
			coupons.POST("/validate", cc.ValidateCoupon)
		}

		loyalty := api.Group("/loyalty")
		{
			loyalty.GET("/preview", lc.PreviewPoints)
			loyalty.GET("/balance", lc.GetBalance)
		}

		auth := api.Group("/auth")
		{
			auth.POST("/login", controllers.Login)
			auth.POST("/forgot", controllers.ForgotPassword)
		}

		// Host portal
		api.POST("/host/login", hc.HostLogin)
		host := api.Group("/host", middleware.RequireRole(utils.RoleHost))
		{
			host.GET("/properties", hc.GetMyProperties)
			host.GET("/properties/:id/occupancy", hc.GetMyPropertyOccupancy)
			host.GET("/bookings", hc.GetMyBookings)
		}

		// Admin back office
		admin := api.Group("/admin", middleware.RequireRole(utils.RoleAdmin))
		{
			admin.GET("/dashboard", controllers.GetDashboardStats)

			adminProperties := admin.Group("/properties")
			{
				adminProperties.GET("", controllers.GetAllProperties)
				adminProperties.POST("", controllers.CreateProperty)
				adminProperties.PATCH("/:id", controllers.UpdateProperty)
				adminProperties.PUT("/:id", controllers.UpdateProperty)
				adminProperties.DELETE("/:id", controllers.DeleteProperty)
			}

			adminBookings := admin.Group("/bookings")
			{
				adminBookings.GET("", bc.GetBookings)
				adminBookings.GET("/:id", bc.GetBookingDetails)
				adminBookings.POST("/:id/confirm", bc.ConfirmBooking)
				adminBookings.POST("/:id/cancel", bc.CancelBooking)
				adminBookings.POST("/:id/complete", bc.CompleteBooking)
				adminBookings.POST("/:id/payments", bc.RecordPayment)
				adminBookings.GET("/:id/payments", bc.GetBookingPayments)
			}

			adminCoupons := admin.Group("/coupons")
			{
				adminCoupons.GET("", controllers.GetCoupons)
				adminCoupons.POST("", controllers.CreateCoupon)
				adminCoupons.GET("/analytics", cc.GetCouponAnalytics)
				adminCoupons.PATCH("/:id", controllers.UpdateCoupon)
				adminCoupons.DELETE("/:id", controllers.DeleteCoupon)
			}

			loyaltyRules := admin.Group("/loyalty-rules")
			{
				loyaltyRules.GET("", controllers.GetLoyaltyRules)
				loyaltyRules.POST("", controllers.CreateLoyaltyRule)
				loyaltyRules.PATCH("/:id", controllers.UpdateLoyaltyRule)
				loyaltyRules.DELETE("/:id", controllers.DeleteLoyaltyRule)
			}

			emailLogs := admin.Group("/email-logs")
			{
				emailLogs.GET("", ec.GetEmailLogs)
				emailLogs.GET("/stats", ec.GetEmailStats)
				emailLogs.POST("/:id/retry", ec.RetryEmail)
			}

			hosts := admin.Group("/hosts")
			{
				hosts.GET("", controllers.GetHosts)
				hosts.POST("", controllers.CreateHost)
				hosts.DELETE("/:id", controllers.DeleteHost)
			}

			admins := admin.Group("/admins")
			{
				admins.GET("", controllers.GetAdmins)
				admins.POST("", controllers.CreateAdmin)
				admins.DELETE("/:id", controllers.DeleteAdmin)
			}

			settings := admin.Group("/settings")
			{
				settings.GET("/site", controllers.GetSiteSettings)
				settings.PUT("/site", controllers.UpdateSiteSettings)
			}
		}
	}

	return r
}
