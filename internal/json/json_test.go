// SPDX-License-Identifier: Apache-2.0

package json

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMarshalIndent(t *testing.T) {
	t.Parallel()

	type status struct {
		Path   string   `json:"path"`
		Valid  bool     `json:"valid"`
		Errors []string `json:"errors,omitempty"`
	}

	got, err := MarshalIndent(map[string]status{
		"b": {Path: "b.csv", Valid: true},
		"a": {Path: "a.csv", Errors: []string{"missing Email"}},
	}, "", "\t")
	require.NoError(t, err)
	require.Equal(t, `{
	"a": {
		"path": "a.csv",
		"valid": false,
		"errors": [
			"missing Email"
		]
	},
	"b": {
		"path": "b.csv",
		"valid": true
	}
}`, string(got))

	var decoded map[string]status
	require.NoError(t, Unmarshal(got, &decoded))
	require.Equal(t, "a.csv", decoded["a"].Path)
}
