package reconcile

import "errors"

var (
	// ErrCancelled is returned when the verify hook declines a plan.
	ErrCancelled = errors.New("import cancelled")

	// ErrInvalidChoice is returned when the conflict callback answers with an
	// action that cannot apply to the record.
	ErrInvalidChoice = errors.New("invalid conflict choice")

	// ErrNameCollision is returned when a ChangeName answer reuses a name that
	// already exists or is already being imported.
	ErrNameCollision = errors.New("name already in use")

	// ErrInvalidSettings is returned for settings that cannot describe a pass.
	ErrInvalidSettings = errors.New("invalid import settings")

	// ErrPlanApplied is returned when Apply is called twice on the same plan.
	ErrPlanApplied = errors.New("plan already applied")
)
