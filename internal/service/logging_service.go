package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"liftlog/internal/domain"
	"liftlog/internal/repository"
)

// --- Error Definitions ---
var (
	ErrLogAccessDenied = errors.New("access denied to modify this log entry")
)

// RefKind tags which identifier space an exercise reference lives in.
type RefKind string

const (
	// RefTemplate references a persisted template Exercise directly.
	RefTemplate RefKind = "template"
	// RefInstance references a WorkoutExercise snapshot, which may or may
	// not carry a template id yet.
	RefInstance RefKind = "instance"
	// RefTransient references a purely local placeholder that has never
	// been persisted anywhere.
	RefTransient RefKind = "transient"
)

// ExerciseRef identifies the exercise a set is logged against. The tagged
// kind replaces string-prefix sniffing on a shared id space: callers say
// explicitly what their id is.
type ExerciseRef struct {
	Kind RefKind
	ID   string
	// Name is the display name; OriginalName is the name the template or
	// snapshot was stored with. When they differ the user renamed the
	// exercise at display time and logging forks a new template.
	Name         string
	OriginalName string
}

// SetInput is one set row as the caller holds it: values still in string
// form, with the log id when this set was written before.
type SetInput struct {
	SetNumber int
	Reps      string
	Weight    string
	Notes     string
	LogID     *string
}

// SetRow is one reconciled set row keyed for display.
type SetRow struct {
	SetNumber int     `json:"setNumber"`
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
	LogID     *string `json:"logId"`
}

// ToggleResult reports what a completion toggle did: which template the log
// row references, which instance mirrors it, and the log id to carry into
// the next toggle of the same set.
type ToggleResult struct {
	LogID      *string `json:"logId"`
	TemplateID string  `json:"exerciseId"`
	InstanceID *string `json:"instanceId,omitempty"`
	Completed  bool    `json:"completed"`
}

// LoggingService reconciles displayed exercise rows with the append-only
// logs table. Its one invariant: a Log row always references a persisted
// template Exercise id, never a transient key or bare instance id.
type LoggingService interface {
	ToggleSetCompleted(ctx context.Context, userID, date string, ref ExerciseRef, set SetInput, markComplete bool) (*ToggleResult, error)
	SaveSetsForExercise(ctx context.Context, userID, date string, ref ExerciseRef, sets []SetInput) ([]SetRow, error)
	ProjectLogsForDate(ctx context.Context, userID, date string) (map[string][]SetRow, error)
}

// loggingService implements the LoggingService interface.
type loggingService struct {
	logRepo      repository.LogRepository
	instanceRepo repository.WorkoutExerciseRepository
	exerciseRepo repository.ExerciseRepository
	workoutRepo  repository.WorkoutRepository
	workouts     WorkoutService
}

// NewLoggingService creates a new instance of loggingService.
func NewLoggingService(
	logRepo repository.LogRepository,
	instanceRepo repository.WorkoutExerciseRepository,
	exerciseRepo repository.ExerciseRepository,
	workoutRepo repository.WorkoutRepository,
	workouts WorkoutService,
) LoggingService {
	return &loggingService{
		logRepo:      logRepo,
		instanceRepo: instanceRepo,
		exerciseRepo: exerciseRepo,
		workoutRepo:  workoutRepo,
		workouts:     workouts,
	}
}

// ToggleSetCompleted marks or un-marks one set. Marking requires numeric
// reps and weight. The template id is fully resolved before any log write
// is issued. A previously written set toggles its existing log row in place
// rather than inserting again, which makes re-invocation safe.
func (s *loggingService) ToggleSetCompleted(ctx context.Context, userID, date string, ref ExerciseRef, set SetInput, markComplete bool) (*ToggleResult, error) {
	var reps int
	var weight float64
	if markComplete {
		var err error
		reps, weight, err = parseSetValues(set)
		if err != nil {
			return nil, err
		}
	}

	workout, err := s.workouts.GetOrCreateWorkout(ctx, userID, date)
	if err != nil {
		// Terminal for this operation; nothing was toggled.
		return nil, err
	}

	st := s.newPromotionState(ctx, userID, workout, ref)
	templateID, err := s.resolveTemplateID(ctx, st)
	if err != nil {
		return nil, err
	}

	result := &ToggleResult{TemplateID: templateID, Completed: markComplete}
	if st.instance != nil {
		result.InstanceID = &st.instance.ID
	}

	switch {
	case set.LogID != nil && *set.LogID != "":
		log, err := s.logRepo.GetByID(ctx, *set.LogID)
		if err != nil {
			return nil, err
		}
		// The log id comes from the caller; it must belong to this user's
		// workout for this date before anything is rewritten.
		if log.WorkoutID != workout.ID {
			return nil, ErrLogAccessDenied
		}
		log.Completed = markComplete
		if markComplete {
			log.Reps = reps
			log.Weight = weight
		}
		if err := s.logRepo.Update(ctx, log); err != nil {
			return nil, err
		}
		result.LogID = set.LogID
	case markComplete:
		log := &domain.Log{
			WorkoutID:  workout.ID,
			ExerciseID: templateID,
			SetNumber:  set.SetNumber,
			Reps:       reps,
			Weight:     weight,
			Notes:      set.Notes,
			Completed:  true,
		}
		logID, err := s.logRepo.Insert(ctx, log)
		if err != nil {
			return nil, err
		}
		result.LogID = &logID
	default:
		// Un-marking a set that was never logged: nothing to write.
	}

	if err := s.mirrorInstance(ctx, st, markComplete); err != nil {
		return nil, err
	}
	return result, nil
}

// SaveSetsForExercise writes every set of one exercise in a single bulk
// insert. Validation is all-or-nothing: any bad row rejects the whole save
// before anything touches the store.
func (s *loggingService) SaveSetsForExercise(ctx context.Context, userID, date string, ref ExerciseRef, sets []SetInput) ([]SetRow, error) {
	if len(sets) == 0 {
		return nil, fmt.Errorf("%w: no sets to save", ErrValidation)
	}
	parsed := make([]struct {
		reps   int
		weight float64
	}, len(sets))
	for i, set := range sets {
		reps, weight, err := parseSetValues(set)
		if err != nil {
			return nil, fmt.Errorf("set %d: %w", set.SetNumber, err)
		}
		parsed[i].reps = reps
		parsed[i].weight = weight
	}

	workout, err := s.workouts.GetOrCreateWorkout(ctx, userID, date)
	if err != nil {
		return nil, err
	}

	st := s.newPromotionState(ctx, userID, workout, ref)
	templateID, err := s.resolveTemplateID(ctx, st)
	if err != nil {
		return nil, err
	}

	logs := make([]*domain.Log, len(sets))
	for i, set := range sets {
		logs[i] = &domain.Log{
			WorkoutID:  workout.ID,
			ExerciseID: templateID,
			SetNumber:  set.SetNumber,
			Reps:       parsed[i].reps,
			Weight:     parsed[i].weight,
			Notes:      set.Notes,
			Completed:  true,
		}
	}
	if err := s.logRepo.InsertMany(ctx, logs); err != nil {
		return nil, err
	}

	if err := s.mirrorInstance(ctx, st, true); err != nil {
		return nil, err
	}

	rows := make([]SetRow, len(logs))
	for i, log := range logs {
		id := log.ID
		rows[i] = SetRow{
			SetNumber: log.SetNumber,
			Reps:      log.Reps,
			Weight:    log.Weight,
			Completed: true,
			LogID:     &id,
		}
	}
	return rows, nil
}

// ProjectLogsForDate rebuilds the display state for a date from persisted
// truth: logs grouped per exercise, re-keyed by instance id where an
// instance carries the template.
func (s *loggingService) ProjectLogsForDate(ctx context.Context, userID, date string) (map[string][]SetRow, error) {
	workout, err := s.workoutRepo.GetByUserAndDate(ctx, userID, date)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return map[string][]SetRow{}, nil
		}
		return nil, err
	}

	logs, err := s.logRepo.ListByWorkout(ctx, workout.ID)
	if err != nil {
		return nil, err
	}
	instances, err := s.instanceRepo.ListByWorkout(ctx, workout.ID)
	if err != nil {
		return nil, err
	}
	return ProjectLogs(instances, logs), nil
}

// ProjectLogs is the pure projection behind ProjectLogsForDate: group logs
// by template exercise id, re-key each group by the instance that carries
// that template (falling back to the template id itself), and order sets by
// set number. The same shape comes out whether sets were logged through
// instances or directly against templates.
func ProjectLogs(instances []domain.WorkoutExercise, logs []domain.Log) map[string][]SetRow {
	instanceByTemplate := make(map[string]string, len(instances))
	for _, inst := range instances {
		if inst.ExerciseID != nil {
			instanceByTemplate[*inst.ExerciseID] = inst.ID
		}
	}

	out := make(map[string][]SetRow)
	for i := range logs {
		log := logs[i]
		key := log.ExerciseID
		if instID, ok := instanceByTemplate[log.ExerciseID]; ok {
			key = instID
		}
		id := log.ID
		out[key] = append(out[key], SetRow{
			SetNumber: log.SetNumber,
			Reps:      log.Reps,
			Weight:    log.Weight,
			Completed: log.Completed,
			LogID:     &id,
		})
	}

	for key := range out {
		rows := out[key]
		sort.Slice(rows, func(a, b int) bool { return rows[a].SetNumber < rows[b].SetNumber })
		out[key] = rows
	}
	return out
}

// --- template promotion ---

// promotionState carries everything the strategy chain needs: the acting
// user, the workout being logged against, the incoming reference and the
// loaded instance when the reference points at one.
type promotionState struct {
	userID   string
	workout  *domain.Workout
	ref      ExerciseRef
	instance *domain.WorkoutExercise
}

var errStrategyNotApplicable = errors.New("strategy not applicable")

// promotionStrategy is one named step of the resolution chain. Each either
// yields a persisted template id or an error; the chain swallows individual
// errors and moves on.
type promotionStrategy struct {
	name    string
	resolve func(ctx context.Context, st *promotionState) (string, error)
}

func (s *loggingService) newPromotionState(ctx context.Context, userID string, workout *domain.Workout, ref ExerciseRef) *promotionState {
	st := &promotionState{userID: userID, workout: workout, ref: ref}
	if ref.Kind == RefInstance && ref.ID != "" {
		if inst, err := s.instanceRepo.GetByID(ctx, ref.ID); err == nil && inst.UserID == userID {
			st.instance = inst
		}
	}
	return st
}

// resolveTemplateID runs the ordered promotion chain and guarantees the
// returned id is a well-formed, persisted template id. One defensive
// creation from the best display name runs when the chain produced nothing
// usable; after that the operation fails with ErrResolution.
func (s *loggingService) resolveTemplateID(ctx context.Context, st *promotionState) (string, error) {
	chain := []promotionStrategy{
		{name: "fork-renamed", resolve: s.forkRenamed},
		{name: "promote-transient", resolve: s.promoteTransient},
		{name: "attach-instance", resolve: s.attachInstance},
		{name: "use-template", resolve: s.useTemplate},
	}

	resolved := ""
	for _, strategy := range chain {
		id, err := strategy.resolve(ctx, st)
		if err != nil {
			continue
		}
		resolved = id
		break
	}

	if uuid.Validate(resolved) == nil {
		return resolved, nil
	}

	// Last line of defense: the chain fell through or produced a malformed
	// id. Create a template from whatever name we have before giving up.
	name := strings.TrimSpace(st.ref.Name)
	if name == "" {
		name = strings.TrimSpace(st.ref.OriginalName)
	}
	if name == "" && st.instance != nil {
		name = st.instance.Name
	}
	if name == "" {
		return "", fmt.Errorf("%w: no usable exercise name", ErrResolution)
	}
	id, err := s.createTemplate(ctx, st, name)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrResolution, err)
	}
	return id, nil
}

// forkRenamed handles a display-time rename: logging under an edited name
// creates a new template rather than renaming shared history in place.
func (s *loggingService) forkRenamed(ctx context.Context, st *promotionState) (string, error) {
	name := strings.TrimSpace(st.ref.Name)
	original := strings.TrimSpace(st.ref.OriginalName)
	if name == "" || original == "" || name == original {
		return "", errStrategyNotApplicable
	}

	id, err := s.createTemplate(ctx, st, name)
	if err != nil {
		return "", err
	}
	s.attachTemplate(ctx, st, id, name)
	return id, nil
}

// promoteTransient persists a template for a purely local placeholder id.
func (s *loggingService) promoteTransient(ctx context.Context, st *promotionState) (string, error) {
	if st.ref.Kind != RefTransient {
		return "", errStrategyNotApplicable
	}
	name := strings.TrimSpace(st.ref.Name)
	if name == "" {
		return "", errStrategyNotApplicable
	}

	id, err := s.createTemplate(ctx, st, name)
	if err != nil {
		return "", err
	}

	// A snapshot may already exist for this placeholder (added ad-hoc
	// earlier in the session); attach the new template to it.
	if st.instance == nil {
		if instances, listErr := s.instanceRepo.ListByWorkout(ctx, st.workout.ID); listErr == nil {
			for i := range instances {
				if instances[i].ExerciseID == nil && instances[i].Name == name {
					st.instance = &instances[i]
					break
				}
			}
		}
	}
	s.attachTemplate(ctx, st, id, name)
	return id, nil
}

// attachInstance promotes an instance snapshot that has no template yet.
func (s *loggingService) attachInstance(ctx context.Context, st *promotionState) (string, error) {
	if st.ref.Kind != RefInstance || st.instance == nil || st.instance.ExerciseID != nil {
		return "", errStrategyNotApplicable
	}

	id, err := s.createTemplate(ctx, st, st.instance.Name)
	if err != nil {
		return "", err
	}
	s.attachTemplate(ctx, st, id, st.instance.Name)
	return id, nil
}

// useTemplate is the terminal strategy: the reference already names a
// persisted template, directly or through its instance.
func (s *loggingService) useTemplate(ctx context.Context, st *promotionState) (string, error) {
	if st.ref.Kind == RefInstance && st.instance != nil && st.instance.ExerciseID != nil {
		return *st.instance.ExerciseID, nil
	}
	if st.ref.Kind == RefTemplate && st.ref.ID != "" {
		if _, err := s.exerciseRepo.GetByID(ctx, st.ref.ID); err != nil {
			return "", err
		}
		return st.ref.ID, nil
	}
	return "", errStrategyNotApplicable
}

// createTemplate persists a new template exercise. The dedicated path
// attaches it to the workout's day; when that fails (or there is no day)
// the generic fallback inserts it day-less.
func (s *loggingService) createTemplate(ctx context.Context, st *promotionState, name string) (string, error) {
	sets := 1
	if st.instance != nil && st.instance.Sets > 0 {
		sets = st.instance.Sets
	}

	if st.workout.DayID != nil {
		exercise := &domain.Exercise{
			DayID:  st.workout.DayID,
			UserID: st.userID,
			Name:   name,
			Sets:   sets,
		}
		if id, err := s.exerciseRepo.Create(ctx, exercise); err == nil {
			return id, nil
		}
	}

	exercise := &domain.Exercise{
		UserID: st.userID,
		Name:   name,
		Sets:   sets,
	}
	return s.exerciseRepo.Create(ctx, exercise)
}

// attachTemplate links a freshly created template to the state's instance,
// if any. Attachment is best-effort; the log write does not depend on it.
func (s *loggingService) attachTemplate(ctx context.Context, st *promotionState, templateID, name string) {
	if st.instance == nil {
		return
	}
	st.instance.ExerciseID = &templateID
	if name != "" {
		st.instance.Name = name
	}
	_ = s.instanceRepo.Update(ctx, st.instance)
}

// mirrorInstance copies the set-level completion onto the persisted
// instance so exercise-level state agrees with the logs.
func (s *loggingService) mirrorInstance(ctx context.Context, st *promotionState, completed bool) error {
	if st.instance == nil {
		return nil
	}
	st.instance.Completed = completed
	if completed {
		now := time.Now().UTC()
		st.instance.CompletedAt = &now
	} else {
		st.instance.CompletedAt = nil
	}
	return s.instanceRepo.Update(ctx, st.instance)
}

// parseSetValues validates that a set's reps and weight are present, numeric
// and finite before they may cross the gateway.
func parseSetValues(set SetInput) (int, float64, error) {
	repsStr := strings.TrimSpace(set.Reps)
	weightStr := strings.TrimSpace(set.Weight)
	if repsStr == "" || weightStr == "" {
		return 0, 0, fmt.Errorf("%w: reps and weight are required", ErrValidation)
	}
	reps, err := strconv.Atoi(repsStr)
	if err != nil || reps < 0 {
		return 0, 0, fmt.Errorf("%w: reps must be a non-negative integer", ErrValidation)
	}
	weight, err := strconv.ParseFloat(weightStr, 64)
	if err != nil || math.IsNaN(weight) || math.IsInf(weight, 0) || weight < 0 {
		return 0, 0, fmt.Errorf("%w: weight must be a finite non-negative number", ErrValidation)
	}
	return reps, weight, nil
}
