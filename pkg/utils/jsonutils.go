package utils

import (
	"encoding/json"
	"fmt"
)

// ParseJSON parses a JSON object string into a map
func ParseJSON(jsonStr string) (map[string]interface{}, error) {
	var result map[string]interface{}
	if err := json.Unmarshal([]byte(jsonStr), &result); err != nil {
		return nil, fmt.Errorf("error parsing JSON: %w", err)
	}
	return result, nil
}

// GetNestedString walks keys through nested objects and returns the string
// at the end of the path
func GetNestedString(data map[string]interface{}, keys ...string) (string, error) {
	if len(keys) == 0 {
		return "", fmt.Errorf("invalid keys")
	}

	current := data
	for _, key := range keys[:len(keys)-1] {
		next, ok := current[key].(map[string]interface{})
		if !ok {
			return "", fmt.Errorf("key %s is not a map", key)
		}
		current = next
	}

	last := keys[len(keys)-1]
	str, ok := current[last].(string)
	if !ok {
		return "", fmt.Errorf("key %s is not a string", last)
	}
	return str, nil
}

// GetFirstMapValue returns an arbitrary value of a non-empty map.
// Price list terms are keyed by opaque SKU codes with a single entry.
func GetFirstMapValue(m map[string]interface{}) (interface{}, error) {
	for _, v := range m {
		return v, nil
	}
	return nil, fmt.Errorf("map is empty")
}
