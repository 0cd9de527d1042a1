// SPDX-License-Identifier: Apache-2.0

package json

import (
	json "github.com/bytedance/sonic"
)

func Unmarshal(b []byte, v any) error {
	return json.Unmarshal(b, v)
}

func Marshal(v any) ([]byte, error) {
	return json.Marshal(v)
}

// MarshalIndent uses the std compatible config, so map keys are sorted and
// the output is stable across runs.
func MarshalIndent(v any, prefix, indent string) ([]byte, error) {
	return json.ConfigStd.MarshalIndent(v, prefix, indent)
}
