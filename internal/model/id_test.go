package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestID_PreservesJSONToken(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		output string
		text   string
		zero   bool
	}{
		{name: "bigint", input: `{"id":5}`, output: `{"id":5}`, text: "5"},
		{name: "uuid", input: `{"id":"8c3f1b54-2b8e-4d5c-9a6e-1f0c2d3e4b5a"}`, output: `{"id":"8c3f1b54-2b8e-4d5c-9a6e-1f0c2d3e4b5a"}`, text: "8c3f1b54-2b8e-4d5c-9a6e-1f0c2d3e4b5a"},
		{name: "numeric string", input: `{"id":"42"}`, output: `{"id":"42"}`, text: "42"},
		{name: "null", input: `{"id":null}`, output: `{"id":null}`, zero: true},
		{name: "empty string", input: `{"id":""}`, output: `{"id":null}`, zero: true},
		{name: "absent", input: `{}`, output: `{"id":null}`, zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var body struct {
				ID ID `json:"id"`
			}
			require.NoError(t, json.Unmarshal([]byte(tt.input), &body))
			assert.Equal(t, tt.zero, body.ID.IsZero())
			assert.Equal(t, tt.text, body.ID.String())

			out, err := json.Marshal(body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.output, string(out))
		})
	}
}

func TestID_RejectsOtherTypes(t *testing.T) {
	for _, input := range []string{`true`, `{"a":1}`, `[1]`} {
		_, err := IDFromJSON([]byte(input))
		assert.Error(t, err, input)
	}
}

func TestTextID(t *testing.T) {
	id := TextID("abc")
	assert.Equal(t, "abc", id.String())

	out, err := json.Marshal(id)
	require.NoError(t, err)
	assert.Equal(t, `"abc"`, string(out))
}
