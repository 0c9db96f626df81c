// Package crew defines the crew, task and execution types exchanged with the
// crew backend.
package crew

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// Crew is a named bundle of tasks tracked by the backend. The backend owns
// every field; a4s only holds re-fetchable copies.
type Crew struct {
	ID          string   `json:"crew_id"`
	Name        string   `json:"crew_name"`
	Description string   `json:"description"`
	TaskNames   []string `json:"task_names"`
	OperatorID  string   `json:"operator_id,omitempty"`
	CreatedAt   string   `json:"created_at,omitempty"`
	UpdatedAt   string   `json:"updated_at,omitempty"`
	Status      Status   `json:"status,omitempty"`

	// Raw is the exact object the backend returned for this crew.
	Raw json.RawMessage `json:"-"`
}

// wireCrew accepts both the current field names and the earlier
// id/name/tasks revision of the backend.
type wireCrew struct {
	CrewID      string            `json:"crew_id"`
	ID          string            `json:"id"`
	CrewName    string            `json:"crew_name"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	TaskNames   []string          `json:"task_names"`
	Tasks       []json.RawMessage `json:"tasks"`
	OperatorID  string            `json:"operator_id"`
	CreatedAt   string            `json:"created_at"`
	CreatedAlt  string            `json:"createdAt"`
	UpdatedAt   string            `json:"updated_at"`
	Status      Status            `json:"status"`
}

// UnmarshalJSON decodes a crew from either backend revision.
func (c *Crew) UnmarshalJSON(data []byte) error {
	var w wireCrew
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*c = Crew{
		ID:          firstNonEmpty(w.CrewID, w.ID),
		Name:        firstNonEmpty(w.CrewName, w.Name),
		Description: w.Description,
		TaskNames:   w.TaskNames,
		OperatorID:  w.OperatorID,
		CreatedAt:   firstNonEmpty(w.CreatedAt, w.CreatedAlt),
		UpdatedAt:   w.UpdatedAt,
		Status:      w.Status,
		Raw:         append(json.RawMessage(nil), bytes.TrimSpace(data)...),
	}

	if c.TaskNames == nil && len(w.Tasks) > 0 {
		names, err := decodeTaskRefs(w.Tasks)
		if err != nil {
			return fmt.Errorf("decode tasks: %w", err)
		}
		c.TaskNames = names
	}

	return nil
}

// decodeTaskRefs accepts tasks as plain names or as objects carrying an id.
func decodeTaskRefs(refs []json.RawMessage) ([]string, error) {
	names := make([]string, 0, len(refs))
	for _, ref := range refs {
		var name string
		if err := json.Unmarshal(ref, &name); err == nil {
			names = append(names, name)
			continue
		}

		var obj struct {
			ID   string `json:"id"`
			Name string `json:"name"`
		}
		if err := json.Unmarshal(ref, &obj); err != nil {
			return nil, err
		}
		names = append(names, firstNonEmpty(obj.ID, obj.Name))
	}
	return names, nil
}

// Created parses the creation timestamp. The zero time is returned when the
// backend omitted it or sent something unparseable.
func (c Crew) Created() time.Time {
	return parseTimestamp(c.CreatedAt)
}

// Updated parses the update timestamp.
func (c Crew) Updated() time.Time {
	return parseTimestamp(c.UpdatedAt)
}

// Tasks resolves the crew's task names against the catalog. Names the catalog
// does not know are returned as bare tasks carrying only the name.
func (c Crew) Tasks() []Task {
	tasks := make([]Task, 0, len(c.TaskNames))
	for _, name := range c.TaskNames {
		if t, ok := LookupTask(name); ok {
			tasks = append(tasks, t)
			continue
		}
		tasks = append(tasks, Task{ID: name, Name: name})
	}
	return tasks
}

// Execution is one run of a crew.
type Execution struct {
	ID        string `json:"execution_id"`
	CrewID    string `json:"crew_id"`
	Status    Status `json:"status"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

// UnmarshalJSON decodes an execution, accepting "id" in place of
// "execution_id".
func (e *Execution) UnmarshalJSON(data []byte) error {
	var w struct {
		ExecutionID string `json:"execution_id"`
		ID          string `json:"id"`
		CrewID      string `json:"crew_id"`
		Status      Status `json:"status"`
		CreatedAt   string `json:"created_at"`
		UpdatedAt   string `json:"updated_at"`
	}
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}

	*e = Execution{
		ID:        firstNonEmpty(w.ExecutionID, w.ID),
		CrewID:    w.CrewID,
		Status:    w.Status,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}
	return nil
}

// Created parses the creation timestamp.
func (e Execution) Created() time.Time {
	return parseTimestamp(e.CreatedAt)
}

// CreatePayload is the request body for creating a crew.
type CreatePayload struct {
	Name        string   `json:"crew_name"`
	Description string   `json:"description"`
	TaskNames   []string `json:"task_names"`
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05.999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
