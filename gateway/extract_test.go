package gateway

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractObject(t *testing.T) {
	tests := []struct {
		name string
		text string
		want string
	}{
		{
			"bare object",
			`{"chartType": "bar"}`,
			`{"chartType": "bar"}`,
		},
		{
			"json fences",
			"Here is your widget:\n```json\n{\"chartType\": \"pie\"}\n```\nEnjoy!",
			`{"chartType": "pie"}`,
		},
		{
			"nested objects",
			`prefix {"a": {"b": {"c": 1}}} suffix`,
			`{"a": {"b": {"c": 1}}}`,
		},
		{
			"braces inside strings",
			`{"title": "curly } brace { soup"}`,
			`{"title": "curly } brace { soup"}`,
		},
		{
			"escaped quotes",
			`{"title": "she said \"hi\" {"}`,
			`{"title": "she said \"hi\" {"}`,
		},
		{
			"first object wins",
			`{"a": 1} {"b": 2}`,
			`{"a": 1}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractObject(tt.text)
			require.True(t, ok)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestExtractObjectMisses(t *testing.T) {
	for _, text := range []string{
		"",
		"no json here, sorry",
		"{\"unterminated\": true",
		"}{",
	} {
		_, ok := ExtractObject(text)
		assert.False(t, ok, "%q", text)
	}
}
