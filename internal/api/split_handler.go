package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"liftlog/internal/domain"
	"liftlog/internal/service"
)

// SplitHandler holds the split, run and schedule service dependencies.
type SplitHandler struct {
	splitService    service.SplitService
	runService      service.RunService
	scheduleService service.ScheduleService
}

// NewSplitHandler creates a new SplitHandler.
func NewSplitHandler(
	splitService service.SplitService,
	runService service.RunService,
	scheduleService service.ScheduleService,
) *SplitHandler {
	return &SplitHandler{
		splitService:    splitService,
		runService:      runService,
		scheduleService: scheduleService,
	}
}

// --- DTOs ---

// CreateSplitRequest defines the expected JSON for creating a split.
type CreateSplitRequest struct {
	Name        string           `json:"name" binding:"required"`
	Mode        domain.SplitMode `json:"mode" binding:"required"`
	RotationLen int              `json:"rotationLen"`
}

// UpdateSplitRequest defines the expected JSON for updating a split.
// Mode is immutable and deliberately absent.
type UpdateSplitRequest struct {
	Name        string `json:"name" binding:"required"`
	RotationLen int    `json:"rotationLen"`
}

// AssignSlotRequest defines the expected JSON for one assignment slot.
// A nil dayId marks the slot as rest.
type AssignSlotRequest struct {
	DayID      *string `json:"dayId"`
	Weekday    *int    `json:"weekday"`
	OrderIndex *int    `json:"orderIndex"`
}

// ScheduleRunRequest defines the expected JSON for scheduling a run.
// A nil endDate means the run is open-ended.
type ScheduleRunRequest struct {
	StartDate string  `json:"startDate" binding:"required"`
	EndDate   *string `json:"endDate"`
}

// RescheduleRunRequest defines the expected JSON for updating a run's
// schedule. A nil startDate clears the schedule and deactivates the run.
type RescheduleRunRequest struct {
	StartDate *string `json:"startDate"`
	EndDate   *string `json:"endDate"`
}

// OverrideRequest defines the expected JSON for a per-date override.
// A nil dayId forces rest for the date.
type OverrideRequest struct {
	DayID *string `json:"dayId"`
	Note  string  `json:"note"`
}

// RunResponse pairs the persisted run with the display duration value.
type RunResponse struct {
	Run           *domain.SplitRun `json:"run"`
	DurationUnits float64          `json:"durationUnits"`
}

// --- Split Handlers ---

// CreateSplit creates a split for the authenticated user.
func (h *SplitHandler) CreateSplit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CreateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	split, err := h.splitService.CreateSplit(c.Request.Context(), userID, req.Name, req.Mode, req.RotationLen)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, split)
}

// ListSplits returns all of the user's splits.
func (h *SplitHandler) ListSplits(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	splits, err := h.splitService.ListSplits(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if splits == nil {
		splits = []domain.Split{}
	}
	c.JSON(http.StatusOK, splits)
}

// UpdateSplit renames a split or adjusts its rotation length.
func (h *SplitHandler) UpdateSplit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req UpdateSplitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	split, err := h.splitService.UpdateSplit(c.Request.Context(), userID, c.Param("splitId"), req.Name, req.RotationLen)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, split)
}

// DeleteSplit deletes a split and its slots.
func (h *SplitHandler) DeleteSplit(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.splitService.DeleteSplit(c.Request.Context(), userID, c.Param("splitId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// AssignSlot upserts one assignment slot of a split.
func (h *SplitHandler) AssignSlot(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req AssignSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	slot, err := h.splitService.AssignSlot(c.Request.Context(), userID, c.Param("splitId"), req.DayID, req.Weekday, req.OrderIndex)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, slot)
}

// ListSlots returns the assignment slots of a split.
func (h *SplitHandler) ListSlots(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	slots, err := h.splitService.ListSlots(c.Request.Context(), userID, c.Param("splitId"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if slots == nil {
		slots = []domain.SplitDay{}
	}
	c.JSON(http.StatusOK, slots)
}

// ClearSlot deletes an assignment slot.
func (h *SplitHandler) ClearSlot(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.splitService.ClearSlot(c.Request.Context(), userID, c.Param("splitId"), c.Param("slotId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// --- Run Handlers ---

// ScheduleRun creates an active run for a split.
func (h *SplitHandler) ScheduleRun(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req ScheduleRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	scheduled, err := h.runService.ScheduleRun(c.Request.Context(), userID, c.Param("splitId"), req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, RunResponse{Run: scheduled.Run, DurationUnits: scheduled.DurationUnits})
}

// RescheduleRun updates or clears a run's schedule.
func (h *SplitHandler) RescheduleRun(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req RescheduleRunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	scheduled, err := h.runService.RescheduleRun(c.Request.Context(), userID, c.Param("runId"), req.StartDate, req.EndDate)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, RunResponse{Run: scheduled.Run, DurationUnits: scheduled.DurationUnits})
}

// ListActiveRuns returns the user's active runs.
func (h *SplitHandler) ListActiveRuns(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	runs, err := h.runService.ListActiveRuns(c.Request.Context(), userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if runs == nil {
		runs = []domain.SplitRun{}
	}
	c.JSON(http.StatusOK, runs)
}

// --- Override Handlers ---

// SetOverride records a manual day correction for a date.
func (h *SplitHandler) SetOverride(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req OverrideRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	override, err := h.scheduleService.SetOverride(c.Request.Context(), userID, c.Param("date"), req.DayID, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, override)
}

// ClearOverride removes the manual correction for a date.
func (h *SplitHandler) ClearOverride(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.scheduleService.ClearOverride(c.Request.Context(), userID, c.Param("date")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
