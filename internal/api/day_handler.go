package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"liftlog/internal/domain"
	"liftlog/internal/service"
)

// DayHandler holds the day service dependency.
type DayHandler struct {
	dayService service.DayService
}

// NewDayHandler creates a new DayHandler.
func NewDayHandler(dayService service.DayService) *DayHandler {
	return &DayHandler{dayService: dayService}
}

// --- DTOs ---

// DayRequest defines the expected JSON for creating or renaming a day.
type DayRequest struct {
	Name string `json:"name" binding:"required"`
}

// ExerciseRequest defines the expected JSON for a template exercise.
type ExerciseRequest struct {
	Name  string `json:"name" binding:"required"`
	Sets  int    `json:"sets" binding:"required,min=1"`
	Reps  int    `json:"reps" binding:"required,min=1"`
	Notes string `json:"notes"`
}

// --- Handler Methods ---

// CreateDay creates a day template for the authenticated user.
func (h *DayHandler) CreateDay(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req DayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.dayService.CreateDay(c.Request.Context(), userID, req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, day)
}

// ListDays returns all of the user's day templates.
func (h *DayHandler) ListDays(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	days, err := h.dayService.ListDays(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if days == nil {
		days = []domain.Day{}
	}
	c.JSON(http.StatusOK, days)
}

// RenameDay renames a day template.
func (h *DayHandler) RenameDay(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req DayRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	day, err := h.dayService.RenameDay(c.Request.Context(), userID, c.Param("dayId"), req.Name)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, day)
}

// DeleteDay deletes a day template and its exercises.
func (h *DayHandler) DeleteDay(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.dayService.DeleteDay(c.Request.Context(), userID, c.Param("dayId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AddExercise adds a template exercise to a day.
func (h *DayHandler) AddExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.dayService.AddExercise(c.Request.Context(), userID, c.Param("dayId"), req.Name, req.Sets, req.Reps, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, exercise)
}

// ListExercises returns the template exercises of a day.
func (h *DayHandler) ListExercises(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	exercises, err := h.dayService.ListExercises(c.Request.Context(), userID, c.Param("dayId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if exercises == nil {
		exercises = []domain.Exercise{}
	}
	c.JSON(http.StatusOK, exercises)
}

// UpdateExercise updates a template exercise.
func (h *DayHandler) UpdateExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req ExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	exercise, err := h.dayService.UpdateExercise(c.Request.Context(), userID, c.Param("exerciseId"), req.Name, req.Sets, req.Reps, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, exercise)
}

// DeleteExercise deletes a template exercise.
func (h *DayHandler) DeleteExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.dayService.DeleteExercise(c.Request.Context(), userID, c.Param("exerciseId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
