package maputil

import "strconv"

// GetFieldBool parses the value stored under key as a boolean, falling back to defaultValue if it is missing or not a boolean.
func GetFieldBool(values map[string]string, key string, defaultValue bool) bool {
	value, ok := values[key]
	if !ok {
		return defaultValue
	}

	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return defaultValue
	}

	return parsed
}
