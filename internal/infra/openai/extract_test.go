package openai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type payload struct {
	Items []struct {
		Description string `json:"description"`
	} `json:"items"`
}

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"plain", `{"items":[{"description":"a"}]}`, "a"},
		{"fenced", "```json\n{\"items\":[{\"description\":\"b\"}]}\n```", "b"},
		{"bare fence", "```\n{\"items\":[{\"description\":\"c\"}]}\n```", "c"},
		{"prose around", `Here you go: {"items":[{"description":"d"}]} hope it helps`, "d"},
		{"braces in strings", `{"items":[{"description":"pipe {50mm} }"}]} {"other":1}`, "pipe {50mm} }"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := ExtractJSON[payload](tt.raw)
			require.NoError(t, err)
			require.Len(t, out.Items, 1)
			assert.Equal(t, tt.want, out.Items[0].Description)
		})
	}
}

func TestExtractJSON_Invalid(t *testing.T) {
	for _, raw := range []string{"", "no json here", `{"items": [`, `{"items": 3}`} {
		_, err := ExtractJSON[payload](raw)
		assert.ErrorIs(t, err, ErrInvalidOutput, raw)
	}
}
