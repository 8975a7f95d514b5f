package routes

import (
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterGigRoutes registers all routes related to gigs. Browsing open gigs
// and reading a single gig are public; everything else requires auth.
func RegisterGigRoutes(
	rg *gin.RouterGroup,
	gigHandler *handlers.GigHandler,
	bidHandler *handlers.BidHandler,
	authMiddleware gin.HandlerFunc,
) {
	gigs := rg.Group("/gigs")
	{
		gigs.GET("/", gigHandler.ListOpenGigs)
		gigs.GET("/my", authMiddleware, gigHandler.ListMyGigs)
		gigs.GET("/:id", gigHandler.GetGigByID)
		gigs.POST("/", authMiddleware, gigHandler.CreateGig)
		gigs.PUT("/:id", authMiddleware, gigHandler.UpdateGig)
		gigs.DELETE("/:id", authMiddleware, gigHandler.DeleteGig)

		// Bid views and repair scoped to a gig
		gigs.GET("/:id/bids", authMiddleware, bidHandler.ListGigBids)
		gigs.POST("/:id/reconcile", authMiddleware, bidHandler.ReconcileGigHire)
	}
}
