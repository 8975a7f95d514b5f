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

// GigHandler holds dependencies for gig operations.
type GigHandler struct {
	service   services.GigService
	validator *validator.Validate
}

// NewGigHandler creates a new GigHandler.
func NewGigHandler(service services.GigService, validate *validator.Validate) *GigHandler {
	return &GigHandler{
		service:   service,
		validator: validate,
	}
}

// CreateGig godoc
// @Summary      Post a new gig
// @Description  Creates a new gig open for bidding. Owner is taken from auth context.
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        gig body      dto.CreateGigRequest true  "Gig details"
// @Success      201 {object}  dto.GigResponse "Gig created successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs [post]
// @Security     BearerAuth
func (h *GigHandler) CreateGig(c *gin.Context) {
	ownerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.CreateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	req.OwnerID = ownerID

	gig, err := h.service.CreateGig(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error creating gig: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create gig"})
		return
	}

	c.JSON(http.StatusCreated, MapGigToResponse(gig))
}

// ListOpenGigs godoc
// @Summary      List open gigs
// @Description  Public listing of gigs open for bidding. Supports text search, category filter, and pagination.
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        search query string false "Search in title and description"
// @Param        category query string false "Category filter"
// @Param        limit query int false "Pagination limit" default(10)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {object}  dto.GigListResponse "Successfully retrieved open gigs"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs [get]
func (h *GigHandler) ListOpenGigs(c *gin.Context) {
	var req dto.ListGigsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	gigs, total, err := h.service.ListOpenGigs(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error listing open gigs: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list gigs"})
		return
	}

	c.JSON(http.StatusOK, MapGigsToListResponse(gigs, total))
}

// ListMyGigs godoc
// @Summary      List my gigs
// @Description  Lists the authenticated user's own gigs across all statuses.
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        status query string false "Status filter (open, assigned, completed, cancelled)"
// @Param        limit query int false "Pagination limit" default(10)
// @Param        offset query int false "Pagination offset" default(0)
// @Success      200 {object}  dto.GigListResponse "Successfully retrieved gigs"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid query parameters"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs/my [get]
// @Security     BearerAuth
func (h *GigHandler) ListMyGigs(c *gin.Context) {
	ownerID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		log.Printf("Error getting user ID from context: %v", err)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	var req dto.ListOwnerGigsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	req.OwnerID = ownerID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	gigs, total, err := h.service.ListOwnerGigs(c.Request.Context(), &req)
	if err != nil {
		log.Printf("Error listing gigs for owner %s: %v", ownerID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list gigs"})
		return
	}

	c.JSON(http.StatusOK, MapGigsToListResponse(gigs, total))
}

// GetGigByID godoc
// @Summary      Get a gig by ID
// @Description  Retrieves details for a specific gig.
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Success      200 {object}  dto.GigResponse "Successfully retrieved gig"
// @Failure      400 {object}  map[string]string "Invalid ID format"
// @Failure      404 {object}  map[string]string "Gig Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs/{id} [get]
func (h *GigHandler) GetGigByID(c *gin.Context) {
	idStr := c.Param("id")
	gigID, err := uuid.Parse(idStr)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid gig ID format"})
		return
	}

	gig, err := h.service.GetGigByID(c.Request.Context(), gigID)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Gig not found"})
		} else {
			log.Printf("Error fetching gig by ID %s: %v", idStr, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve gig"})
		}
		return
	}

	c.JSON(http.StatusOK, MapGigToResponse(gig))
}

// UpdateGig godoc
// @Summary      Update a gig
// @Description  Edits a gig's listing fields. Owner only, and only while the gig is open.
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Param        gig body      dto.UpdateGigRequest true  "Updated gig details"
// @Success      200 {object}  dto.GigResponse "Gig updated successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid input or gig no longer open"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the gig owner"
// @Failure      404 {object}  map[string]string "Gig Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs/{id} [put]
// @Security     BearerAuth
func (h *GigHandler) UpdateGig(c *gin.Context) {
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

	var req dto.UpdateGigRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body: " + err.Error()})
		return
	}
	req.ID = gigID
	req.UserID = userID

	if err := h.validator.Struct(req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "details": FormatValidationErrors(err)})
		return
	}

	gig, err := h.service.UpdateGig(c.Request.Context(), &req)
	if err != nil {
		respondGigMutationError(c, err, "update", gigID)
		return
	}

	c.JSON(http.StatusOK, MapGigToResponse(gig))
}

// DeleteGig godoc
// @Summary      Delete a gig
// @Description  Removes a gig and its bids. Owner only, and only while the gig is open.
// @Tags         gigs
// @Accept       json
// @Produce      json
// @Param        id path      string true  "Gig ID" Format(uuid)
// @Success      204 "Gig deleted successfully"
// @Failure      400 {object}  map[string]string "Bad Request - Invalid ID or gig no longer open"
// @Failure      401 {object}  map[string]string "Unauthorized"
// @Failure      403 {object}  map[string]string "Forbidden - Not the gig owner"
// @Failure      404 {object}  map[string]string "Gig Not Found"
// @Failure      500 {object}  map[string]string "Internal Server Error"
// @Router       /gigs/{id} [delete]
// @Security     BearerAuth
func (h *GigHandler) DeleteGig(c *gin.Context) {
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

	req := dto.DeleteGigRequest{ID: gigID, UserID: userID}
	if err := h.service.DeleteGig(c.Request.Context(), &req); err != nil {
		respondGigMutationError(c, err, "delete", gigID)
		return
	}

	c.Status(http.StatusNoContent)
}

// respondGigMutationError maps gig update/delete service errors to HTTP
// responses.
func respondGigMutationError(c *gin.Context, err error, action string, gigID uuid.UUID) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Gig not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "You do not own this gig"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("Error during gig %s %s: %v", gigID, action, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to " + action + " gig"})
	}
}
