package routes

import (
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/api/handlers"

	"github.com/gin-gonic/gin"
)

// RegisterBidRoutes registers all routes related to bids.
func RegisterBidRoutes(
	rg *gin.RouterGroup,
	bidHandler *handlers.BidHandler,
	authMiddleware gin.HandlerFunc,
) {
	bids := rg.Group("/bids")
	bids.Use(authMiddleware)
	{
		bids.POST("/", bidHandler.SubmitBid)
		bids.GET("/my", bidHandler.ListMyBids)
		bids.PATCH("/:id/hire", bidHandler.HireBid)
		bids.DELETE("/:id", bidHandler.WithdrawBid)
	}
}
