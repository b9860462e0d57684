package annotations

import (
	"strconv"
	"strings"
)

// InvalidRanges returns the comma separated entries of value that are not "start-end" integer pairs.
func InvalidRanges(value string) []string {
	var invalid []string

	for _, entry := range strings.Split(value, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}

		if !isValidRange(entry) {
			invalid = append(invalid, entry)
		}
	}

	return invalid
}

func isValidRange(entry string) bool {
	bounds := strings.Split(entry, "-")
	if len(bounds) != 2 {
		return false
	}

	for _, bound := range bounds {
		if _, err := strconv.Atoi(strings.TrimSpace(bound)); err != nil {
			return false
		}
	}

	return true
}
