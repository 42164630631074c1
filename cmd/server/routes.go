package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"cryptobet.backend/internal/interfaces/http/handlers"
	"cryptobet.backend/internal/interfaces/http/middleware"
)

type routeDeps struct {
	authHandler       *handlers.AuthHandler
	assetHandler      *handlers.AssetHandler
	investmentHandler *handlers.InvestmentHandler
	wizardHandler     *handlers.WizardHandler
	adminHandler      *handlers.AdminHandler
	authMiddleware    gin.HandlerFunc
}

func registerAPIV1Routes(r *gin.Engine, d routeDeps) {
	v1 := r.Group("/api/v1")
	{
		// Auth routes (public)
		auth := v1.Group("/auth")
		{
			auth.POST("/register", d.authHandler.Register)
			auth.POST("/login", d.authHandler.Login)
			auth.POST("/verify-email", d.authHandler.VerifyEmail)
			auth.POST("/resend-code", d.authHandler.ResendCode)
			auth.POST("/refresh", d.authHandler.RefreshToken)
			auth.POST("/logout", d.authHandler.Logout)
			auth.GET("/me", d.authMiddleware, d.authHandler.GetMe)
			auth.PUT("/me", d.authMiddleware, d.authHandler.UpdateMe)
		}

		// Asset catalog (public, active only)
		v1.GET("/assets", d.assetHandler.List)

		// Investment routes (protected)
		investments := v1.Group("/investments")
		investments.Use(d.authMiddleware)
		{
			investments.GET("/quote", d.investmentHandler.Quote)
			investments.POST("", middleware.IdempotencyMiddleware(), d.investmentHandler.Submit)
			investments.GET("", d.investmentHandler.ListMine)
			investments.GET("/:id", d.investmentHandler.GetByID)
		}

		// Deposit wizard routes (protected)
		wizard := v1.Group("/wizard")
		wizard.Use(d.authMiddleware)
		{
			wizard.POST("", d.wizardHandler.Start)
			wizard.GET("/:id", d.wizardHandler.Get)
			wizard.POST("/:id/asset", d.wizardHandler.SelectAsset)
			wizard.POST("/:id/amount", d.wizardHandler.EnterAmount)
			wizard.POST("/:id/confirm", d.wizardHandler.Confirm)
			wizard.DELETE("/:id", d.wizardHandler.Cancel)
		}

		// Admin routes (protected, admin role required)
		admin := v1.Group("/admin")
		admin.Use(d.authMiddleware, middleware.RequireAdmin())
		{
			admin.GET("/users", d.adminHandler.ListUsers)
			admin.PUT("/users/:id/role", d.adminHandler.ChangeRole)
			admin.GET("/investments", d.adminHandler.ListInvestments)
			admin.POST("/investments/:id/approve", d.adminHandler.Approve)
			admin.POST("/investments/:id/reject", d.adminHandler.Reject)
			admin.GET("/stats", d.adminHandler.GetStats)
			admin.GET("/assets", d.assetHandler.ListAll)
			admin.POST("/assets", d.assetHandler.Create)
			admin.PUT("/assets/:symbol", d.assetHandler.Update)
		}
	}
}

func applyCORSMiddleware(r *gin.Engine) {
	origins := []string{"http://localhost:3000"}
	if env := os.Getenv("CORS_ALLOWED_ORIGINS"); env != "" {
		origins = strings.Split(env, ",")
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders:    []string{"X-Request-ID", "X-Idempotency-Hit"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
}

func registerHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "cryptobet-backend",
		})
	})
}

func registerMetricsRoute(r *gin.Engine) {
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
}
