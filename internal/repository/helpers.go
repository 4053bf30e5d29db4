package repository

import (
	"bytes"
	"encoding/json"
)

// listResponse tolerates both response shapes the backend uses for list
// endpoints: a bare JSON array and a paginated {"results": [...]} envelope.
type listResponse[T any] struct {
	Items []T
}

func (l *listResponse[T]) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '[' {
		return json.Unmarshal(data, &l.Items)
	}

	var env struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(data, &env); err != nil {
		return err
	}
	l.Items = env.Results
	return nil
}
