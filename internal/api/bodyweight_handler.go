package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"liftlog/internal/domain"
	"liftlog/internal/service"
)

// BodyweightHandler holds the bodyweight service dependency.
type BodyweightHandler struct {
	bodyweightService service.BodyweightService
}

// NewBodyweightHandler creates a new BodyweightHandler.
func NewBodyweightHandler(bodyweightService service.BodyweightService) *BodyweightHandler {
	return &BodyweightHandler{bodyweightService: bodyweightService}
}

// BodyweightRequest defines the expected JSON for a weigh-in.
type BodyweightRequest struct {
	Weight float64           `json:"weight" binding:"required"`
	Unit   domain.WeightUnit `json:"unit" binding:"required"`
}

// GetBodyweight returns the weigh-in for a date, 404 when none exists.
func (h *BodyweightHandler) GetBodyweight(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	entry, err := h.bodyweightService.GetBodyweight(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if entry == nil {
		abortWithError(c, http.StatusNotFound, "no bodyweight logged for this date")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// UpsertBodyweight records or overwrites the weigh-in for a date.
func (h *BodyweightHandler) UpsertBodyweight(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req BodyweightRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	entry, err := h.bodyweightService.UpsertBodyweight(c.Request.Context(), userID, c.Param("date"), req.Weight, req.Unit)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, entry)
}
