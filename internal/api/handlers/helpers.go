package handlers

import (
	"fmt"

	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/models"
	"github.com/arpityadav8303/gigflow-Arpit-Yadav/internal/transport/dto"

	"github.com/go-playground/validator/v10"
)

// FormatValidationErrors turns validator failures into a field -> message map
// suitable for a 400 response body.
func FormatValidationErrors(err error) map[string]string {
	errorsMap := make(map[string]string)
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		errorsMap["error"] = "Invalid validation error type"
		return errorsMap
	}
	for _, fieldError := range validationErrors {
		fieldName := fieldError.Field()
		switch fieldError.Tag() {
		case "required":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' is required", fieldName)
		case "email":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be a valid email address", fieldName)
		case "min":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at least %s characters long", fieldName, fieldError.Param())
		case "max":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be at most %s characters long", fieldName, fieldError.Param())
		case "gt":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be greater than %s", fieldName, fieldError.Param())
		case "oneof":
			errorsMap[fieldName] = fmt.Sprintf("Field '%s' must be one of: %s", fieldName, fieldError.Param())
		default:
			errorsMap[fieldName] = fmt.Sprintf("Field validation for '%s' failed on the '%s' tag", fieldName, fieldError.Tag())
		}
	}
	return errorsMap
}

// MapUserToResponse converts a models.User to a dto.UserResponse
func MapUserToResponse(user *models.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        user.ID,
		Name:      user.Name,
		Email:     user.Email,
		CreatedAt: user.CreatedAt,
		UpdatedAt: user.UpdatedAt,
	}
}

// MapGigToResponse converts a models.Gig to a dto.GigResponse
func MapGigToResponse(gig *models.Gig) dto.GigResponse {
	return dto.GigResponse{
		ID:                gig.ID,
		Title:             gig.Title,
		Description:       gig.Description,
		Budget:            gig.Budget,
		Category:          gig.Category,
		Status:            string(gig.Status),
		OwnerID:           gig.OwnerID,
		HiredFreelancerID: gig.HiredFreelancerID,
		Deadline:          gig.Deadline,
		BidCount:          gig.BidCount,
		CreatedAt:         gig.CreatedAt,
		UpdatedAt:         gig.UpdatedAt,
	}
}

// MapBidToResponse converts a models.Bid to a dto.BidResponse
func MapBidToResponse(bid *models.Bid) dto.BidResponse {
	return dto.BidResponse{
		ID:           bid.ID,
		GigID:        bid.GigID,
		FreelancerID: bid.FreelancerID,
		Message:      bid.Message,
		Price:        bid.Price,
		Status:       string(bid.Status),
		CreatedAt:    bid.CreatedAt,
		UpdatedAt:    bid.UpdatedAt,
	}
}

// MapGigsToListResponse builds the paginated gig listing body.
func MapGigsToListResponse(gigs []models.Gig, total int) dto.GigListResponse {
	items := make([]dto.GigResponse, 0, len(gigs))
	for i := range gigs {
		items = append(items, MapGigToResponse(&gigs[i]))
	}
	return dto.GigListResponse{Total: total, Gigs: items}
}

// MapBidsToListResponse builds the paginated bid listing body.
func MapBidsToListResponse(bids []models.Bid, total int) dto.BidListResponse {
	items := make([]dto.BidResponse, 0, len(bids))
	for i := range bids {
		items = append(items, MapBidToResponse(&bids[i]))
	}
	return dto.BidListResponse{Total: total, Bids: items}
}
