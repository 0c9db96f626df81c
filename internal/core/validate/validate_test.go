package validate

import (
	"testing"

	"github.com/hay-kot/criterio"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/a4s/internal/core/crew"
)

func TestCrewName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"valid name", "nightly-review", false},
		{"valid with spaces", "nightly review", false},
		{"empty string", "", true},
		{"only spaces", "   ", true},
		{"only tabs", "\t\t", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CrewName(tt.input)
			assert.Equal(t, tt.wantErr, err != nil, "CrewName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		})
	}
}

func TestTaskIDs(t *testing.T) {
	tests := []struct {
		name    string
		input   []string
		wantErr string
	}{
		{"single", []string{"fetch_code"}, ""},
		{"all", crew.TaskIDs(), ""},
		{"empty", nil, "select at least one task"},
		{"unknown", []string{"fetch_code", "launch_rockets"}, `unknown task "launch_rockets"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := TaskIDs(tt.input)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestCreatePayload(t *testing.T) {
	assert.NoError(t, CreatePayload(crew.CreatePayload{Name: "n", TaskNames: []string{"fetch_code"}}))

	err := CreatePayload(crew.CreatePayload{Name: " "})

	var fieldErrs criterio.FieldErrors
	require.ErrorAs(t, err, &fieldErrs)
	require.Len(t, fieldErrs, 2)
	assert.Equal(t, "crew_name", fieldErrs[0].Field)
	assert.Contains(t, fieldErrs[0].Err.Error(), ErrNameRequired.Error())
	assert.Equal(t, "task_names", fieldErrs[1].Field)
}
