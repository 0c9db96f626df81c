package crew

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrew_UnmarshalJSON_CurrentFields(t *testing.T) {
	data := []byte(`{
		"crew_id": "c1",
		"crew_name": "nightly",
		"description": "runs at night",
		"task_names": ["fetch_code", "analyze_code"],
		"operator_id": "op-7",
		"created_at": "2025-01-02T03:04:05Z",
		"updated_at": "2025-01-02T04:00:00Z",
		"status": "running"
	}`)

	var c Crew
	require.NoError(t, json.Unmarshal(data, &c))

	assert.Equal(t, "c1", c.ID)
	assert.Equal(t, "nightly", c.Name)
	assert.Equal(t, "runs at night", c.Description)
	assert.Equal(t, []string{"fetch_code", "analyze_code"}, c.TaskNames)
	assert.Equal(t, "op-7", c.OperatorID)
	assert.Equal(t, StatusRunning, c.Status)
	assert.Equal(t, time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC), c.Created())
	assert.JSONEq(t, string(data), string(c.Raw))
}

func TestCrew_UnmarshalJSON_LegacyFields(t *testing.T) {
	data := []byte(`{
		"id": "c2",
		"name": "legacy",
		"tasks": [{"id": "send_notification", "name": "Notifier"}, "create_ticket"]
	}`)

	var c Crew
	require.NoError(t, json.Unmarshal(data, &c))

	assert.Equal(t, "c2", c.ID)
	assert.Equal(t, "legacy", c.Name)
	assert.Equal(t, []string{"send_notification", "create_ticket"}, c.TaskNames)
	assert.Equal(t, Status(""), c.Status)
	assert.Equal(t, StatusIdle, c.Status.OrIdle())
}

func TestCrew_MarshalJSON_UsesCurrentFields(t *testing.T) {
	c := Crew{ID: "c1", Name: "n", TaskNames: []string{"fetch_code"}, Status: StatusPending}

	bits, err := json.Marshal(c)
	require.NoError(t, err)

	assert.JSONEq(t, `{"crew_id":"c1","crew_name":"n","description":"","task_names":["fetch_code"],"status":"pending"}`, string(bits))
}

func TestCrew_Created_Unparseable(t *testing.T) {
	c := Crew{CreatedAt: "yesterday-ish"}
	assert.True(t, c.Created().IsZero())

	c = Crew{CreatedAt: "2025-03-04T10:11:12.123456"}
	assert.Equal(t, 2025, c.Created().Year())
}

func TestCrew_Tasks_ResolvesCatalog(t *testing.T) {
	c := Crew{TaskNames: []string{"analyze_code", "mystery"}}

	tasks := c.Tasks()

	require.Len(t, tasks, 2)
	assert.Equal(t, "Code Analyzer", tasks[0].Name)
	assert.Equal(t, "🔎", tasks[0].Icon)
	assert.Equal(t, Task{ID: "mystery", Name: "mystery"}, tasks[1])
}

func TestExecution_UnmarshalJSON(t *testing.T) {
	var e Execution
	require.NoError(t, json.Unmarshal([]byte(`{"id":"e1","crew_id":"c1","status":"failed"}`), &e))
	assert.Equal(t, "e1", e.ID)
	assert.Equal(t, StatusFailed, e.Status)

	require.NoError(t, json.Unmarshal([]byte(`{"execution_id":"e2","crew_id":"c1","status":"completed"}`), &e))
	assert.Equal(t, "e2", e.ID)
}

func TestDecodeCrewList(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantIDs []string
		wantErr bool
	}{
		{name: "wrapped", input: `{"crews":[{"crew_id":"a"},{"crew_id":"b"}]}`, wantIDs: []string{"a", "b"}},
		{name: "bare array", input: `[{"id":"a"}]`, wantIDs: []string{"a"}},
		{name: "wrapped null", input: `{"crews":null}`, wantIDs: []string{}},
		{name: "empty body", input: ``, wantIDs: []string{}},
		{name: "missing key", input: `{"items":[]}`, wantErr: true},
		{name: "garbage", input: `<html>`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			crews, err := DecodeCrewList([]byte(tt.input))
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)

			ids := make([]string, 0, len(crews))
			for _, c := range crews {
				ids = append(ids, c.ID)
			}
			assert.Equal(t, tt.wantIDs, ids)
		})
	}
}

func TestDecodeExecutionList(t *testing.T) {
	execs, err := DecodeExecutionList([]byte(`{"executions":[{"execution_id":"e1","status":"running"}]}`))
	require.NoError(t, err)
	require.Len(t, execs, 1)
	assert.True(t, AnyRunning(execs))

	execs, err = DecodeExecutionList([]byte(`[{"id":"e1","status":"completed"}]`))
	require.NoError(t, err)
	assert.False(t, AnyRunning(execs))
}

func TestStatus_Label(t *testing.T) {
	assert.Equal(t, "Running", StatusRunning.Label())
	assert.Equal(t, "Idle", Status("").Label())
	assert.Equal(t, "Idle", Status("queued").Label(), "unknown states display as idle")
	assert.Equal(t, StatusIdle, Status("queued").OrIdle())
	assert.Equal(t, StatusCompleted, StatusCompleted.OrIdle())
	assert.False(t, Status("queued").IsKnown())
	assert.False(t, StatusIdle.IsKnown())
}

func TestCatalog(t *testing.T) {
	tasks := Catalog()
	require.Len(t, tasks, 4)
	assert.Equal(t, []string{"fetch_code", "analyze_code", "send_notification", "create_ticket"}, TaskIDs())

	tasks[0].Name = "mutated"
	fresh, ok := LookupTask("fetch_code")
	require.True(t, ok)
	assert.Equal(t, "Fetch Code", fresh.Name, "catalog must not be mutable through Catalog()")

	_, ok = LookupTask("nope")
	assert.False(t, ok)
}

func TestParsePayload(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "blank", input: "  \n ", want: ""},
		{name: "object", input: "{ \"repo\": \"a4s\" }", want: `{"repo":"a4s"}`},
		{name: "array", input: "[1, 2]", want: `[1,2]`},
		{name: "scalar", input: "42", want: `42`},
		{name: "malformed", input: "{bad", wantErr: true},
		{name: "trailing data", input: "{} {}", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParsePayload(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, ErrInvalidPayload))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}
