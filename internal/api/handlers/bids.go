package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/api/middleware"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/services"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// BidHandler holds dependencies for bid operations, including hiring.
type BidHandler struct {
	service   services.BidService
	validator *validator.Validate
}

// NewBidHandler creates a new BidHandler.
func NewBidHandler(service services.BidService, validate *validator.Validate) *BidHandler {
	return &BidHandler{
		service:   service,
		validator: validate,
	}
}

// SubmitBid godoc
// @Summary      Submit a bid on a gig
// @Description  Places a pending bid on an open gig. One bid per freelancer per gig; owners cannot bid on their own gigs.
// @Tags         bids
// @Accept       json
// @Produce      json
// @Param        bid body      dto.SubmitBidRequest true  "Bid details"
// @Success      201 {object}  dto.BidResponse "Bid submitted successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input, gig not open, or own gig"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      404 {object}  map[string]string "Gig Not Found"
// @Failure      409 {object}  map[string]string "Conflict - Already bid on this gig"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /bids [post]
// @Security     BearerAuth
func (h *BidHandler) SubmitBid(c *gin.Context) {
	freelancerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.SubmitBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	req.FreelancerID = freelancerID

	bid, err := h.service.SubmitBid(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gig not found"})
		case errors.Is(err, services.ErrDuplicateBid):
			c.JSON(http.StatusConflict, gin.H{"error": "You have already bid on this gig"})
		case errors.Is(err, services.ErrSelfBid):
			c.JSON(http.StatusBadRequest, gin.H{"error": "You cannot bid on your own gig"})
		case errors.Is(err, services.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error submitting bid on gig %s: %v", req.GigID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to submit bid"})
		}
		return
	}

	c.JSON(http.StatusCreated, MapBidToResponse(bid))
}

// HireBid godoc
// @Summary      Hire the freelancer behind a bid
// @Description  Assigns the gig to the bid's freelancer, marks the bid hired, and rejects all other pending bids. Gig owner only. At most one hire can ever succeed per gig; concurrent attempts lose with a conflict.
// @Tags         bids
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Bid ID" Format(uuid)
// @Success      200 {object}  dto.HireBidResponse "Hire completed"
// @Failure      400 {object}  map[string]string "Conflict - Gig no longer open or bid no longer pending"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the gig owner"
// @Failure      404 {object}  map[string]string "Bid or Gig Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /bids/{id}/hire [patch]
// @Security     BearerAuth
func (h *BidHandler) HireBid(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bidID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bid ID format"})
		return
	}

	req := dto.HireBidRequest{BidID: bidID, UserID: userID}

	gig, bid, err := h.service.HireBid(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGigNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gig not found"})
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bid not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this gig"})
		case errors.Is(err, services.ErrConflict):
			// Losing a hire race lands here; the message says which
			// precondition stopped holding.
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error hiring bid %s: %v", bidID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to hire"})
		}
		return
	}

	c.JSON(http.StatusOK, dto.HireBidResponse{
		Gig: MapGigToResponse(gig),
		Bid: MapBidToResponse(bid),
	})
}

// WithdrawBid godoc
// @Summary      Withdraw a bid
// @Description  Removes a pending bid. Bidder only; a bid that has already been hired or rejected cannot be withdrawn.
// @Tags         bids
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Bid ID" Format(uuid)
// @Success      200 {object}  map[string]string "Bid withdrawn successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid ID or bid no longer pending"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the bidder"
// @Failure      404 {object}  map[string]string "Bid Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /bids/{id} [delete]
// @Security     BearerAuth
func (h *BidHandler) WithdrawBid(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	bidID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid bid ID format"})
		return
	}

	req := dto.WithdrawBidRequest{BidID: bidID, UserID: userID}
	if err := h.service.WithdrawBid(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Bid not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this bid"})
		case errors.Is(err, services.ErrConflict):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			log.Printf("Error withdrawing bid %s: %v", bidID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to withdraw bid"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Bid withdrawn successfully"})
}

// ListGigBids godoc
// @Summary      List the bids on a gig
// @Description  Lists bids on a gig, visible only to the gig owner.
// @Tags         bids
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Param        limit query int false "Pagination limit" default(10)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {array}   dto.BidResponse "Successfully retrieved bids"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the gig owner"
// @Failure      404 {object}  map[string]string "Gig Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs/{id}/bids [get]
// @Security     BearerAuth
func (h *BidHandler) ListGigBids(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	gigID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gig ID format"})
		return
	}

	var req dto.ListGigBidsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.GigID = gigID
	req.UserID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	bids, err := h.service.ListBidsForGig(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gig not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this gig"})
		default:
			log.Printf("Error listing bids for gig %s: %v", gigID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bids"})
		}
		return
	}

	responses := make([]dto.BidResponse, 0, len(bids))
	for i := range bids {
		responses = append(responses, MapBidToResponse(&bids[i]))
	}
	c.JSON(http.StatusOK, responses)
}

// ReconcileGigHire godoc
// @Summary      Reconcile a gig's hire record
// @Description  Repairs a gig left half-hired by a crash (assigned gig whose winning bid is still pending). Gig owner only. Idempotent; returns whether anything was repaired.
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Success      200 {object}  map[string]bool "Reconciliation result"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the gig owner"
// @Failure      404 {object}  map[string]string "Gig Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs/{id}/reconcile [post]
// @Security     BearerAuth
func (h *BidHandler) ReconcileGigHire(c *gin.Context) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	gigID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gig ID format"})
		return
	}

	req := dto.ReconcileGigRequest{GigID: gigID, UserID: userID}

	repaired, err := h.service.ReconcileGigHire(c.Request.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Gig not found"})
		case errors.Is(err, services.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this gig"})
		default:
			log.Printf("Error reconciling gig %s: %v", gigID, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reconcile gig"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"repaired": repaired})
}

// ListMyBids godoc
// @Summary      List my bids
// @Description  Lists the authenticated freelancer's own bids.
// @Tags         bids
// @Accept       json
// @Produce      json
// @Param        limit query int false "Pagination limit" default(10)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {object}  dto.BidListResponse "Successfully retrieved bids"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /bids/my [get]
// @Security     BearerAuth
func (h *BidHandler) ListMyBids(c *gin.Context) {
	freelancerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListMyBidsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.FreelancerID = freelancerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	bids, total, err := h.service.ListMyBids(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error listing bids for freelancer %s: %v", freelancerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list bids"})
		return
	}

	c.JSON(http.StatusOK, MapBidsToListResponse(bids, total))
}
