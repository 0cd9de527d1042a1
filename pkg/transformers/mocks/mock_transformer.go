// SPDX-License-Identifier: Apache-2.0

package mocks

import (
	"context"
	"sync/atomic"

	"github.com/xataio/csvsanity/pkg/transformers"
)

type Transformer struct {
	TransformFn     func(transformers.Value) transformers.Outcome
	TransformerType transformers.TransformerType
	Params          transformers.Parameters
	calls           atomic.Uint64
}

func (m *Transformer) Transform(_ context.Context, val transformers.Value) transformers.Outcome {
	m.calls.Add(1)
	return m.TransformFn(val)
}

func (m *Transformer) Type() transformers.TransformerType {
	return m.TransformerType
}

func (m *Transformer) Parameters() transformers.Parameters {
	return m.Params
}

func (m *Transformer) GetTransformCalls() uint64 {
	return m.calls.Load()
}
