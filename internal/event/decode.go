package event

import (
	"encoding/json"
	"fmt"
)

// DecodePayload returns the payload of evt as T. Events published in-process
// already carry T; payloads read back from JSON (dead letters, SSE replays)
// arrive as maps and are converted.
func DecodePayload[T any](evt Event) (T, error) {
	if v, ok := evt.Payload.(T); ok {
		return v, nil
	}
	if p, ok := evt.Payload.(*T); ok && p != nil {
		return *p, nil
	}

	var out T
	raw, err := json.Marshal(evt.Payload)
	if err != nil {
		return out, fmt.Errorf("%s payload: %w", evt.Type, err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("%s payload: %w", evt.Type, err)
	}
	return out, nil
}
