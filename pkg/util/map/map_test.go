package maputil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetFieldBool(t *testing.T) {
	data2expectedValid := map[string]bool{
		"true":  true,
		"1":     true,
		"false": false,
		"FALSE": false,
		"0":     false,
	}

	for text, expected := range data2expectedValid {
		t.Run(text, func(t *testing.T) {
			m := map[string]string{"value": text}
			assert.Equal(t, expected, GetFieldBool(m, "value", !expected))
		})
	}

	data2expectedInvalid := []string{"nie", "NEIN", "Tak", "ja", "01", "00", "10", "blabla", ""}
	for _, text := range data2expectedInvalid {
		t.Run(text, func(t *testing.T) {
			m := map[string]string{"value": text}

			assert.True(t, GetFieldBool(m, "value", true))
			assert.False(t, GetFieldBool(m, "value", false))
		})
	}
}
