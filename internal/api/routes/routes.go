package routes

import (
	"log"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/api/handlers"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/api/middleware"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/app"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/services"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/storage/postgres"

	"github.com/gin-gonic/gin"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterRoutes sets up the API routes by calling resource-specific
// registration functions.
func RegisterRoutes(router *gin.Engine, app *app.Application) {

	// --- Base API Group ---
	apiV1 := router.Group("/api/v1")

	// --- Wire storage -> services -> handlers ---
	db := postgres.NewDB(app.DBPool)
	userRepo := postgres.NewUserRepo(db)
	gigRepo := postgres.NewGigRepo(db)
	bidRepo := postgres.NewBidRepo(db)

	userService := services.NewUserService(userRepo, app.Config.JWT)
	gigService := services.NewGigService(gigRepo)
	bidService := services.NewBidService(bidRepo, gigRepo, app.Notifier)

	userHandler := handlers.NewUserHandler(userService, app.Validator)
	gigHandler := handlers.NewGigHandler(gigService, app.Validator)
	bidHandler := handlers.NewBidHandler(bidService, app.Validator)

	// --- Middleware ---
	authMiddleware := middleware.JWTAuthMiddleware(app.Config.JWT.Secret)
	router.Use(middleware.Logger())

	// --- Register Resource Routes ---
	RegisterUserRoutes(apiV1, userHandler, authMiddleware)
	RegisterGigRoutes(apiV1, gigHandler, bidHandler, authMiddleware)
	RegisterBidRoutes(apiV1, bidHandler, authMiddleware)

	// --- Health Check ---
	router.GET("/health", handlers.HealthCheck)

	log.Println("Configuring Swagger UI handler")
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
