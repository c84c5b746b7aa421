package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"liftlog/internal/domain"
	"liftlog/internal/service"
)

// WorkoutHandler holds the workout, logging and schedule service
// dependencies.
type WorkoutHandler struct {
	workoutService  service.WorkoutService
	loggingService  service.LoggingService
	scheduleService service.ScheduleService
}

// NewWorkoutHandler creates a new WorkoutHandler.
func NewWorkoutHandler(
	workoutService service.WorkoutService,
	loggingService service.LoggingService,
	scheduleService service.ScheduleService,
) *WorkoutHandler {
	return &WorkoutHandler{
		workoutService:  workoutService,
		loggingService:  loggingService,
		scheduleService: scheduleService,
	}
}

// --- DTOs ---

// ExerciseRefRequest carries the tagged exercise reference a set is logged
// against: a template id, an instance id, or a transient local key.
type ExerciseRefRequest struct {
	Kind         service.RefKind `json:"kind" binding:"required"`
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	OriginalName string          `json:"originalName"`
}

// SetInputRequest is one set row with values still in string form.
type SetInputRequest struct {
	SetNumber int     `json:"setNumber"`
	Reps      string  `json:"reps"`
	Weight    string  `json:"weight"`
	Notes     string  `json:"notes"`
	LogID     *string `json:"logId"`
}

// ToggleSetRequest defines the expected JSON for toggling one set.
type ToggleSetRequest struct {
	Exercise  ExerciseRefRequest `json:"exercise" binding:"required"`
	Set       SetInputRequest    `json:"set" binding:"required"`
	Completed bool               `json:"completed"`
}

// SaveSetsRequest defines the expected JSON for the bulk save flow.
type SaveSetsRequest struct {
	Exercise ExerciseRefRequest `json:"exercise" binding:"required"`
	Sets     []SetInputRequest  `json:"sets" binding:"required"`
}

// AdHocExerciseRequest defines the expected JSON for adding a templateless
// exercise directly to a date.
type AdHocExerciseRequest struct {
	Name  string `json:"name" binding:"required"`
	Sets  int    `json:"sets"`
	Notes string `json:"notes"`
}

// InstanceUpdateRequest defines the expected JSON for editing a snapshot.
type InstanceUpdateRequest struct {
	Name  string `json:"name" binding:"required"`
	Sets  int    `json:"sets"`
	Notes string `json:"notes"`
}

// CompleteWorkoutRequest defines the expected JSON for the workout-level
// completion flag.
type CompleteWorkoutRequest struct {
	Completed bool `json:"completed"`
}

// DayViewResponse is the full state for one calendar date: the schedule
// resolution, the materialized workout (if any), its snapshots and the
// replayed set logs keyed the way the display consumes them.
type DayViewResponse struct {
	Date      string                        `json:"date"`
	DayID     *string                       `json:"dayId"`
	IsRest    bool                          `json:"isRest"`
	HasRun    bool                          `json:"hasRun"`
	SlotKind  domain.SplitMode              `json:"slotKind,omitempty"`
	Override  *domain.DayOverride           `json:"override,omitempty"`
	Workout   *domain.Workout               `json:"workout,omitempty"`
	Exercises []domain.WorkoutExercise      `json:"exercises"`
	Logs      map[string][]service.SetRow   `json:"logs"`
}

func refFromRequest(req ExerciseRefRequest) service.ExerciseRef {
	return service.ExerciseRef{
		Kind:         req.Kind,
		ID:           req.ID,
		Name:         req.Name,
		OriginalName: req.OriginalName,
	}
}

func setFromRequest(req SetInputRequest) service.SetInput {
	return service.SetInput{
		SetNumber: req.SetNumber,
		Reps:      req.Reps,
		Weight:    req.Weight,
		Notes:     req.Notes,
		LogID:     req.LogID,
	}
}

// --- Handler Methods ---

// GetDayView resolves and replays everything the UI needs for one date.
// It never materializes a workout by itself; navigation is read-only.
func (h *WorkoutHandler) GetDayView(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	date := c.Param("date")

	res, err := h.scheduleService.ResolveDate(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	view := DayViewResponse{
		Date:      date,
		DayID:     res.DayID,
		IsRest:    res.IsRest,
		HasRun:    res.HasRun,
		SlotKind:  res.SlotKind,
		Override:  res.Override,
		Exercises: []domain.WorkoutExercise{},
		Logs:      map[string][]service.SetRow{},
	}

	workout, err := h.workoutService.GetWorkout(c.Request.Context(), userID, date)
	if err != nil {
		if !errors.Is(err, service.ErrWorkoutNotFound) {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
		return
	}
	view.Workout = workout

	instances, err := h.workoutService.ListInstances(c.Request.Context(), userID, workout.ID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	if instances != nil {
		view.Exercises = instances
	}

	logs, err := h.loggingService.ProjectLogsForDate(c.Request.Context(), userID, date)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	view.Logs = logs

	c.JSON(http.StatusOK, view)
}

// MaterializeWorkout gets or creates the workout for a date.
func (h *WorkoutHandler) MaterializeWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	workout, err := h.workoutService.GetOrCreateWorkout(c.Request.Context(), userID, c.Param("date"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// CompleteWorkout flips the workout-level completion flag for a date.
func (h *WorkoutHandler) CompleteWorkout(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req CompleteWorkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	workout, err := h.workoutService.SetWorkoutCompleted(c.Request.Context(), userID, c.Param("date"), req.Completed)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, workout)
}

// ToggleSet marks or un-marks one set of an exercise for a date.
func (h *WorkoutHandler) ToggleSet(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req ToggleSetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	result, err := h.loggingService.ToggleSetCompleted(
		c.Request.Context(), userID, c.Param("date"),
		refFromRequest(req.Exercise), setFromRequest(req.Set), req.Completed,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// SaveSets bulk-writes all sets of one exercise for a date.
func (h *WorkoutHandler) SaveSets(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req SaveSetsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	sets := make([]service.SetInput, len(req.Sets))
	for i, s := range req.Sets {
		sets[i] = setFromRequest(s)
	}

	rows, err := h.loggingService.SaveSetsForExercise(
		c.Request.Context(), userID, c.Param("date"),
		refFromRequest(req.Exercise), sets,
	)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, rows)
}

// AddAdHocExercise attaches a templateless exercise to a date.
func (h *WorkoutHandler) AddAdHocExercise(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req AdHocExerciseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	instance, err := h.workoutService.AddAdHocExercise(c.Request.Context(), userID, c.Param("date"), req.Name, req.Sets, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, instance)
}

// UpdateInstance edits a snapshot's display fields.
func (h *WorkoutHandler) UpdateInstance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}
	var req InstanceUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	instance, err := h.workoutService.UpdateInstance(c.Request.Context(), userID, c.Param("instanceId"), req.Name, req.Sets, req.Notes)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, instance)
}

// DeleteInstance removes a snapshot from its date.
func (h *WorkoutHandler) DeleteInstance(c *gin.Context) {
	userID, ok := requireUserID(c)
	if !ok {
		return
	}

	if err := h.workoutService.DeleteInstance(c.Request.Context(), userID, c.Param("instanceId")); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
