// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"sync/atomic"

	"github.com/xataio/csvsanity/pkg/transformers"
)

type TransformerBuilder struct {
	NewFn func(*transformers.Config) (transformers.Transformer, error)
	calls atomic.Uint64
}

func (m *TransformerBuilder) New(cfg *transformers.Config) (transformers.Transformer, error) {
	m.calls.Add(1)
	return m.NewFn(cfg)
}

func (m *TransformerBuilder) GetNewCalls() uint64 {
	return m.calls.Load()
}
