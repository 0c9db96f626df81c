package crew

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// DecodeCrewList decodes a crew list response. The backend has returned both
// {"crews": [...]} and a bare array; either is accepted.
func DecodeCrewList(data []byte) ([]Crew, error) {
	var crews []Crew
	if err := decodeList(data, "crews", &crews); err != nil {
		return nil, fmt.Errorf("decode crews: %w", err)
	}
	if crews == nil {
		crews = []Crew{}
	}
	return crews, nil
}

// DecodeExecutionList decodes an execution list response, accepting
// {"executions": [...]} or a bare array.
func DecodeExecutionList(data []byte) ([]Execution, error) {
	var execs []Execution
	if err := decodeList(data, "executions", &execs); err != nil {
		return nil, fmt.Errorf("decode executions: %w", err)
	}
	if execs == nil {
		execs = []Execution{}
	}
	return execs, nil
}

func decodeList(data []byte, key string, out any) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}

	if trimmed[0] == '[' {
		return json.Unmarshal(trimmed, out)
	}

	var wrapper map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &wrapper); err != nil {
		return err
	}

	inner, ok := wrapper[key]
	if !ok {
		return fmt.Errorf("missing %q field", key)
	}
	if bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
		return nil
	}
	return json.Unmarshal(inner, out)
}
