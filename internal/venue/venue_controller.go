package venue

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/woorifc/kickmate/internal/apperrors"
	"github.com/woorifc/kickmate/internal/guard"
	"github.com/woorifc/kickmate/internal/middleware"
	"github.com/woorifc/kickmate/pkg/responses"
)

// VenueController handles venue and review HTTP requests.
type VenueController struct {
	repo VenueRepository
}

func NewVenueController(repo VenueRepository) *VenueController {
	return &VenueController{repo: repo}
}

// --- DTOs ---

type CreateVenueRequest struct {
	Name         string  `json:"name" binding:"required,min=2,max=100"`
	Address      string  `json:"address" binding:"required,max=200"`
	Region       string  `json:"region"`
	Description  string  `json:"description" binding:"max=1000"`
	Latitude     float64 `json:"latitude" binding:"min=-90,max=90"`
	Longitude    float64 `json:"longitude" binding:"min=-180,max=180"`
	PricePerHour int     `json:"price_per_hour" binding:"min=0"`
	Indoor       bool    `json:"indoor"`
	Parking      bool    `json:"parking"`
	ShowerRoom   bool    `json:"shower_room"`
}

type UpdateVenueRequest struct {
	Name         *string  `json:"name" binding:"omitempty,min=2,max=100"`
	Address      *string  `json:"address" binding:"omitempty,max=200"`
	Region       *string  `json:"region"`
	Description  *string  `json:"description" binding:"omitempty,max=1000"`
	Latitude     *float64 `json:"latitude" binding:"omitempty,min=-90,max=90"`
	Longitude    *float64 `json:"longitude" binding:"omitempty,min=-180,max=180"`
	PricePerHour *int     `json:"price_per_hour" binding:"omitempty,min=0"`
	Indoor       *bool    `json:"indoor"`
	Parking      *bool    `json:"parking"`
	ShowerRoom   *bool    `json:"shower_room"`
}

type ReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment" binding:"max=1000"`
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		responses.BadRequest(c, "Invalid "+name)
		return 0, false
	}
	return uint(id), true
}

func mustUserID(c *gin.Context) (uint, bool) {
	userID, err := middleware.GetUserIDFromContext(c)
	if err != nil {
		responses.Unauthorized(c, "")
		return 0, false
	}
	return userID, true
}

// --- Venue handlers ---

// CreateVenue godoc
// @Summary Register a venue
// @Tags Venues
// @Accept json
// @Produce json
// @Param venue body CreateVenueRequest true "Venue data"
// @Success 201 {object} responses.SuccessResponse{data=Venue}
// @Failure 400 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /venues [post]
func (vc *VenueController) CreateVenue(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}

	var req CreateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	v := &Venue{
		Name:         req.Name,
		Address:      req.Address,
		Region:       req.Region,
		Description:  req.Description,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		PricePerHour: req.PricePerHour,
		Indoor:       req.Indoor,
		Parking:      req.Parking,
		ShowerRoom:   req.ShowerRoom,
	}
	if err := vc.repo.CreateVenue(v); err != nil {
		responses.InternalServerError(c, "Failed to create venue: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Venue created successfully", v)
}

// GetVenueByID godoc
// @Summary Get a venue by ID
// @Tags Venues
// @Produce json
// @Param venue_id path uint true "Venue ID"
// @Success 200 {object} responses.SuccessResponse{data=Venue}
// @Failure 404 {object} responses.ErrorResponse
// @Router /venues/{venue_id} [get]
func (vc *VenueController) GetVenueByID(c *gin.Context) {
	venueID, ok := parseIDParam(c, "venue_id")
	if !ok {
		return
	}
	v, err := vc.repo.GetVenueByID(venueID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve venue: "+err.Error())
		return
	}
	if v == nil {
		responses.NotFound(c, "Venue")
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Venue retrieved successfully", v)
}

// GetAllVenues godoc
// @Summary List venues
// @Tags Venues
// @Produce json
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Param region query string false "Filter by region"
// @Param indoor query bool false "Filter by indoor flag"
// @Param name query string false "Search by name"
// @Success 200 {object} responses.PaginatedResponse{data=[]Venue}
// @Router /venues [get]
func (vc *VenueController) GetAllVenues(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	if limit > 100 {
		limit = 100
	}

	filters := make(map[string]interface{})
	if region := c.Query("region"); region != "" {
		filters["region"] = region
	}
	if indoor := c.Query("indoor"); indoor != "" {
		filters["indoor"] = indoor == "true"
	}
	if name := c.Query("name"); name != "" {
		filters["name"] = name
	}

	venues, total, err := vc.repo.GetAllVenues(page, limit, filters)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve venues: "+err.Error())
		return
	}
	responses.SendPaginated(c, http.StatusOK, "Venues retrieved successfully", venues, total, page, limit)
}

// UpdateVenue godoc
// @Summary Update a venue
// @Tags Venues
// @Accept json
// @Produce json
// @Param venue_id path uint true "Venue ID"
// @Param venue body UpdateVenueRequest true "Fields to update"
// @Success 200 {object} responses.SuccessResponse{data=Venue}
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /venues/{venue_id} [put]
func (vc *VenueController) UpdateVenue(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}
	venueID, ok := parseIDParam(c, "venue_id")
	if !ok {
		return
	}

	var req UpdateVenueRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	v, err := vc.repo.GetVenueByID(venueID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve venue: "+err.Error())
		return
	}
	if v == nil {
		responses.NotFound(c, "Venue")
		return
	}

	if req.Name != nil {
		v.Name = *req.Name
	}
	if req.Address != nil {
		v.Address = *req.Address
	}
	if req.Region != nil {
		v.Region = *req.Region
	}
	if req.Description != nil {
		v.Description = *req.Description
	}
	if req.Latitude != nil {
		v.Latitude = *req.Latitude
	}
	if req.Longitude != nil {
		v.Longitude = *req.Longitude
	}
	if req.PricePerHour != nil {
		v.PricePerHour = *req.PricePerHour
	}
	if req.Indoor != nil {
		v.Indoor = *req.Indoor
	}
	if req.Parking != nil {
		v.Parking = *req.Parking
	}
	if req.ShowerRoom != nil {
		v.ShowerRoom = *req.ShowerRoom
	}

	if err := vc.repo.UpdateVenue(v); err != nil {
		responses.InternalServerError(c, "Failed to update venue: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Venue updated successfully", v)
}

// DeleteVenue godoc
// @Summary Delete a venue
// @Tags Venues
// @Produce json
// @Param venue_id path uint true "Venue ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 404 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /venues/{venue_id} [delete]
func (vc *VenueController) DeleteVenue(c *gin.Context) {
	if _, ok := mustUserID(c); !ok {
		return
	}
	venueID, ok := parseIDParam(c, "venue_id")
	if !ok {
		return
	}

	v, err := vc.repo.GetVenueByID(venueID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve venue: "+err.Error())
		return
	}
	if v == nil {
		responses.NotFound(c, "Venue")
		return
	}

	if err := vc.repo.DeleteVenue(venueID); err != nil {
		responses.InternalServerError(c, "Failed to delete venue: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Venue deleted successfully", nil)
}

// --- Review handlers ---

// CreateReview godoc
// @Summary Review a venue
// @Description One review per user per venue.
// @Tags Venues
// @Accept json
// @Produce json
// @Param venue_id path uint true "Venue ID"
// @Param review body ReviewRequest true "Review payload"
// @Success 201 {object} responses.SuccessResponse{data=VenueReview}
// @Failure 409 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /venues/{venue_id}/reviews [post]
func (vc *VenueController) CreateReview(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	venueID, ok := parseIDParam(c, "venue_id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	v, err := vc.repo.GetVenueByID(venueID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve venue: "+err.Error())
		return
	}
	if v == nil {
		responses.NotFound(c, "Venue")
		return
	}

	existing, err := vc.repo.GetReview(venueID, userID)
	if err != nil {
		responses.InternalServerError(c, "Failed to check existing review: "+err.Error())
		return
	}
	if existing != nil {
		responses.SendError(c, apperrors.Status(apperrors.ErrReviewAlreadyExists), apperrors.ErrReviewAlreadyExists.Error())
		return
	}

	review := &VenueReview{
		VenueID: venueID,
		UserID:  userID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := vc.repo.CreateReview(review); err != nil {
		responses.InternalServerError(c, "Failed to create review: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusCreated, "Review created successfully", review)
}

// GetReviews godoc
// @Summary List a venue's reviews
// @Tags Venues
// @Produce json
// @Param venue_id path uint true "Venue ID"
// @Success 200 {object} responses.SuccessResponse{data=[]VenueReview}
// @Failure 404 {object} responses.ErrorResponse
// @Router /venues/{venue_id}/reviews [get]
func (vc *VenueController) GetReviews(c *gin.Context) {
	venueID, ok := parseIDParam(c, "venue_id")
	if !ok {
		return
	}
	v, err := vc.repo.GetVenueByID(venueID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve venue: "+err.Error())
		return
	}
	if v == nil {
		responses.NotFound(c, "Venue")
		return
	}
	reviews, err := vc.repo.GetReviews(venueID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve reviews: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Reviews retrieved successfully", reviews)
}

// UpdateReview godoc
// @Summary Update own review
// @Tags Venues
// @Accept json
// @Produce json
// @Param venue_id path uint true "Venue ID"
// @Param review_id path uint true "Review ID"
// @Param review body ReviewRequest true "Review payload"
// @Success 200 {object} responses.SuccessResponse{data=VenueReview}
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /venues/{venue_id}/reviews/{review_id} [put]
func (vc *VenueController) UpdateReview(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	venueID, ok := parseIDParam(c, "venue_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	var req ReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.BadRequest(c, "Invalid request payload: "+err.Error())
		return
	}

	review, err := vc.repo.GetReviewByID(reviewID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve review: "+err.Error())
		return
	}
	if review == nil || review.VenueID != venueID {
		responses.NotFound(c, "Review")
		return
	}
	if !guard.IsSelf(review.UserID, userID) {
		responses.SendError(c, apperrors.Status(apperrors.ErrForbidden), apperrors.ErrForbidden.Error())
		return
	}

	review.Rating = req.Rating
	review.Comment = req.Comment
	if err := vc.repo.UpdateReview(review); err != nil {
		responses.InternalServerError(c, "Failed to update review: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Review updated successfully", review)
}

// DeleteReview godoc
// @Summary Delete own review
// @Tags Venues
// @Produce json
// @Param venue_id path uint true "Venue ID"
// @Param review_id path uint true "Review ID"
// @Success 200 {object} responses.SuccessResponse
// @Failure 403 {object} responses.ErrorResponse
// @Security ApiKeyAuth
// @Router /venues/{venue_id}/reviews/{review_id} [delete]
func (vc *VenueController) DeleteReview(c *gin.Context) {
	userID, ok := mustUserID(c)
	if !ok {
		return
	}
	venueID, ok := parseIDParam(c, "venue_id")
	if !ok {
		return
	}
	reviewID, ok := parseIDParam(c, "review_id")
	if !ok {
		return
	}

	review, err := vc.repo.GetReviewByID(reviewID)
	if err != nil {
		responses.InternalServerError(c, "Failed to retrieve review: "+err.Error())
		return
	}
	if review == nil || review.VenueID != venueID {
		responses.NotFound(c, "Review")
		return
	}
	if !guard.IsSelf(review.UserID, userID) {
		responses.SendError(c, apperrors.Status(apperrors.ErrForbidden), apperrors.ErrForbidden.Error())
		return
	}

	if err := vc.repo.DeleteReview(reviewID); err != nil {
		responses.InternalServerError(c, "Failed to delete review: "+err.Error())
		return
	}
	responses.SendSuccess(c, http.StatusOK, "Review deleted successfully", nil)
}
