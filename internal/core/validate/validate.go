// Package validate provides shared validation functions for crew input.
package validate

import (
	"errors"
	"fmt"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/hay-kot/a4s/internal/core/crew"
)

var (
	// ErrNameRequired is returned when a crew name is blank.
	ErrNameRequired = errors.New("crew name is required")
	// ErrNoTasks is returned when a crew would have no tasks.
	ErrNoTasks = errors.New("select at least one task")
)

// CrewName validates a crew name is non-empty after trimming whitespace.
func CrewName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameRequired
	}
	return nil
}

// TaskIDs validates that ids is non-empty and names only catalog tasks.
func TaskIDs(ids []string) error {
	if len(ids) == 0 {
		return ErrNoTasks
	}
	for _, id := range ids {
		if _, ok := crew.LookupTask(id); !ok {
			return fmt.Errorf("unknown task %q (known: %s)", id, strings.Join(crew.TaskIDs(), ", "))
		}
	}
	return nil
}

// CreatePayload validates a create request as field errors keyed by the
// backend's field names.
func CreatePayload(p crew.CreatePayload) error {
	return criterio.ValidateStruct(
		criterio.Run("crew_name", p.Name, CrewName),
		criterio.Run("task_names", p.TaskNames, TaskIDs),
	)
}
