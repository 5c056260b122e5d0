package network

import (
	"encoding/json"
	"fmt"
)

// Decode unmarshals a successful response body into T.
func Decode[T any](r Response) (T, error) {
	var v T
	if r.Err != nil {
		return v, r.Err
	}
	if !r.OK {
		return v, fmt.Errorf("unexpected status %d", r.Code)
	}
	if err := json.Unmarshal(r.Body, &v); err != nil {
		return v, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}
