package crew

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPayload is returned when the optional execution payload is not
// parseable JSON.
var ErrInvalidPayload = errors.New("invalid JSON payload")

// ParsePayload validates the free-form execution payload typed by the user.
// Blank text means "no body" and yields a nil message. Any other text must be
// parseable JSON; it is returned compacted.
func ParsePayload(text string) (json.RawMessage, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, nil
	}

	if !json.Valid([]byte(text)) {
		var v any
		err := json.Unmarshal([]byte(text), &v)
		if err == nil {
			err = errors.New("unexpected trailing data")
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(text)); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return json.RawMessage(buf.Bytes()), nil
}
