package trip

import (
	"errors"

	"github.com/citywander/trip-planner/internal/routing"
	"github.com/citywander/trip-planner/pkg/common"
	sentryerrors "github.com/citywander/trip-planner/pkg/errors"
	"github.com/citywander/trip-planner/pkg/logger"
	"github.com/citywander/trip-planner/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes trip planning over HTTP
type Handler struct {
	service PlannerService
}

// NewHandler creates a trip handler
func NewHandler(service PlannerService) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers trip routes on the given group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	trips := rg.Group("/trips")
	{
		trips.POST("/plan", h.PlanTrip)
		trips.GET("/:id", h.GetItinerary)
		trips.POST("/:id/activate", h.Activate)
		trips.DELETE("/:id", h.Discard)
	}
}

type planTripRequest struct {
	OriginLatitude  *float64 `json:"origin_latitude" validate:"required,latitude"`
	OriginLongitude *float64 `json:"origin_longitude" validate:"required,longitude"`
	FreeText        string   `json:"free_text" validate:"required,max=500"`
	RadiusMeters    float64  `json:"radius_meters" validate:"omitempty,gt=0,lte=50000"`
	Mode            string   `json:"mode" validate:"omitempty,travel_mode"`
}

// PlanTrip handles POST /trips/plan
func (h *Handler) PlanTrip(c *gin.Context) {
	var req planTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AppErrorResponse(c, common.NewValidationError(err.Error()))
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		common.AppErrorResponse(c, common.NewValidationError(err.Error()))
		return
	}

	itineraries, err := h.service.PlanTrip(c.Request.Context(), PlanRequest{
		OriginLatitude:  *req.OriginLatitude,
		OriginLongitude: *req.OriginLongitude,
		FreeText:        req.FreeText,
		RadiusMeters:    req.RadiusMeters,
		Mode:            routing.TravelMode(req.Mode),
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.CreatedResponse(c, gin.H{"itineraries": itineraries})
}

// GetItinerary handles GET /trips/:id
func (h *Handler) GetItinerary(c *gin.Context) {
	it, err := h.service.GetItinerary(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, it)
}

// Activate handles POST /trips/:id/activate
func (h *Handler) Activate(c *gin.Context) {
	it, err := h.service.Activate(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{
		"itinerary_id": it.ID,
		"total_steps":  it.StepCount(),
	})
}

// Discard handles DELETE /trips/:id
func (h *Handler) Discard(c *gin.Context) {
	if err := h.service.Discard(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, gin.H{"deleted": true})
}

// respondError maps domain errors onto the response envelope. A malformed
// proposal is a planning failure the caller can retry, not a server fault,
// so it comes back as 422 rather than 500.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrItineraryNotFound):
		common.AppErrorResponse(c, common.NewNotFoundError("itinerary not found", err))
	case errors.Is(err, ErrInvalidOrigin):
		common.AppErrorResponse(c, common.NewBadRequestError("origin coordinates out of range", err))
	case errors.Is(err, ErrMalformedProposal):
		logger.WarnContext(c.Request.Context(), "trip planning failed on malformed proposal", zap.Error(err))
		common.AppErrorResponse(c, common.NewUnprocessableError("trip planning failed, try again", err))
	default:
		logger.ErrorContext(c.Request.Context(), "trip request failed", zap.Error(err))
		sentryerrors.CaptureError(err)
		common.AppErrorResponse(c, common.NewInternalError("internal server error", err))
	}
}
