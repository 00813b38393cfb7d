package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// decodeList normalizes the service's two list shapes: a bare JSON array or a
// paginated envelope {"results": [...]}. Every list endpoint must accept
// both.
func decodeList[T any](data []byte) ([]T, error) {
	trimmed := bytes.TrimSpace(data)

	if len(trimmed) > 0 && trimmed[0] == '[' {
		var items []T
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("decoding list: %w", err)
		}

		return items, nil
	}

	var envelope struct {
		Results []T `json:"results"`
	}

	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("decoding list envelope: %w", err)
	}

	return envelope.Results, nil
}
