package navigation

import (
	"errors"
	"net/http"

	"github.com/citywander/trip-planner/internal/trip"
	"github.com/citywander/trip-planner/pkg/common"
	"github.com/citywander/trip-planner/pkg/logger"
	"github.com/citywander/trip-planner/pkg/validation"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Handler exposes the turn-by-turn cursor over HTTP
type Handler struct {
	service Service
}

// NewHandler creates a navigation handler
func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers navigation routes under the trips group
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	nav := rg.Group("/trips/:id/navigation")
	{
		nav.GET("", h.Current)
		nav.POST("/advance", h.Advance)
		nav.POST("/retreat", h.Retreat)
		nav.POST("/jump", h.JumpTo)
	}
}

// Current handles GET /trips/:id/navigation
func (h *Handler) Current(c *gin.Context) {
	view, err := h.service.Current(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, view)
}

// Advance handles POST /trips/:id/navigation/advance
func (h *Handler) Advance(c *gin.Context) {
	view, err := h.service.Advance(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, view)
}

// Retreat handles POST /trips/:id/navigation/retreat
func (h *Handler) Retreat(c *gin.Context) {
	view, err := h.service.Retreat(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, view)
}

type jumpRequest struct {
	Index *int `json:"index" validate:"required"`
}

// JumpTo handles POST /trips/:id/navigation/jump
func (h *Handler) JumpTo(c *gin.Context) {
	var req jumpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.AppErrorResponse(c, common.NewValidationError(err.Error()))
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		common.AppErrorResponse(c, common.NewValidationError(err.Error()))
		return
	}

	view, err := h.service.JumpTo(c.Request.Context(), c.Param("id"), *req.Index)
	if err != nil {
		h.respondError(c, err)
		return
	}

	common.SuccessResponse(c, view)
}

func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, trip.ErrItineraryNotFound):
		common.AppErrorResponse(c, common.NewNotFoundError("itinerary not found", err))
	case errors.Is(err, ErrNoActiveSession):
		common.AppErrorResponse(c, common.NewAppError(http.StatusConflict, "itinerary is not active", err))
	case errors.Is(err, ErrNoNavigableSteps):
		common.AppErrorResponse(c, common.NewUnprocessableError("itinerary has no navigable steps", err))
	default:
		logger.ErrorContext(c.Request.Context(), "navigation request failed", zap.Error(err))
		common.AppErrorResponse(c, common.NewInternalError("internal server error", err))
	}
}
