package a4s

import (
	"errors"

	"github.com/hay-kot/a4s/internal/core/validate"
)

var (
	// ErrNameRequired is returned by Create when the crew name is blank.
	ErrNameRequired = validate.ErrNameRequired
	// ErrNoTasksSelected is returned by Create when no task is selected.
	ErrNoTasksSelected = validate.ErrNoTasks
	// ErrCrewRunning is returned by Execute when the crew cannot start right now.
	ErrCrewRunning = errors.New("crew is already running")
	// ErrCrewNotFound is returned when a crew id is not in the local collection.
	ErrCrewNotFound = errors.New("crew not found")
)
