package server

import (
	"net/http"
	"time"

	"event-registration-backend/internal/config"
	"event-registration-backend/internal/handlers"
	"event-registration-backend/internal/middleware"
	"event-registration-backend/internal/repositories"
	"event-registration-backend/internal/services"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine with all routes and middleware wired
func NewRouter(
	cfg *config.Config,
	authService *services.AuthService,
	ticketService *services.TicketService,
	formRepo *repositories.FormRepository,
) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.SecurityHeaders())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	authHandler := handlers.NewAuthHandler(authService, cfg.IsProduction())
	formHandler := handlers.NewFormHandler(formRepo)
	registrationHandler := handlers.NewRegistrationHandler(ticketService, formRepo)

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	// Public surface: session endpoints, the published form and registration
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/logout", authHandler.Logout)
	api.GET("/auth/me", middleware.RequireAuth(authService), authHandler.Me)
	api.GET("/forms/published", formHandler.Published)
	api.POST("/register", registrationHandler.Register)

	// Admin surface: everything behind the session cookie
	admin := api.Group("/admin", middleware.RequireAuth(authService))

	admin.GET("/registrations", registrationHandler.List)
	admin.POST("/registrations", registrationHandler.Create)
	admin.GET("/registrations/:id", registrationHandler.Get)
	admin.DELETE("/registrations/:id", registrationHandler.Delete)
	admin.POST("/registrations/:id/qr", registrationHandler.GenerateQR)
	admin.GET("/registrations/:id/qr.jpeg", registrationHandler.QRImage)
	admin.POST("/registrations/:id/revoke", registrationHandler.Revoke)

	admin.POST("/scan", registrationHandler.Scan)
	admin.GET("/stats", registrationHandler.Stats)

	admin.GET("/forms", formHandler.List)
	admin.POST("/forms", formHandler.Create)
	admin.GET("/forms/:id", formHandler.Get)
	admin.PUT("/forms/:id", formHandler.Update)
	admin.DELETE("/forms/:id", formHandler.Delete)
	admin.POST("/forms/:id/publish", formHandler.Publish)
	admin.POST("/forms/:id/unpublish", formHandler.Unpublish)
	admin.GET("/forms/:id/stats", registrationHandler.FormStats)

	return router
}
