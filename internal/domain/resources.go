package domain

import (
	"encoding/json"
	"fmt"
)

// ResourceMap maps a farm identifier to its resource description. The value
// shape is farm-specific and deliberately opaque; it passes through to
// consumers untouched.
type ResourceMap map[string]json.RawMessage

// ParseResourceMap decodes the farm resources dataset. Anything other than
// a JSON object at the top level is malformed and yields an empty map.
func ParseResourceMap(data []byte) (ResourceMap, error) {
	var m ResourceMap
	if err := json.Unmarshal(data, &m); err != nil {
		return ResourceMap{}, fmt.Errorf("parse resources dataset: %w", err)
	}
	if m == nil {
		m = ResourceMap{}
	}
	return m, nil
}
