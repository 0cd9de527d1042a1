// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ncruces/go-strftime"
)

// DateTransformer parses the field with the first matching input format and
// formats it with the output format. Formats use strftime/strptime
// directives.
type DateTransformer struct {
	inputFormats []string
	outputFormat string
}

// ISO8601DateFormat is the default output format, i.e. 2006-01-02.
const ISO8601DateFormat = "%F"

var dateParams = []Parameter{
	{
		Name:          "input_formats",
		SupportedType: "array",
		Required:      true,
	},
	{
		Name:          "output_format",
		SupportedType: "string",
		Default:       ISO8601DateFormat,
		Required:      false,
	},
}

var errNoInputFormats = errors.New("date: input_formats must not be empty")

func NewDateTransformer(params Parameters) (*DateTransformer, error) {
	if err := ValidateParameters(params, []string{"input_formats", "output_format"}); err != nil {
		return nil, err
	}

	inputFormats, found, err := FindParameterArray[string](params, "input_formats")
	if err != nil {
		return nil, fmt.Errorf("date: input_formats must be an array of strings: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("date: %w: input_formats", ErrRequiredParameter)
	}
	if len(inputFormats) == 0 {
		return nil, errNoInputFormats
	}

	outputFormat, err := FindParameterWithDefault(params, "output_format", ISO8601DateFormat)
	if err != nil {
		return nil, fmt.Errorf("date: output_format must be a string: %w", err)
	}
	if outputFormat == "" {
		return nil, fmt.Errorf("date: output_format must not be empty: %w", ErrInvalidParameters)
	}

	return &DateTransformer{
		inputFormats: inputFormats,
		outputFormat: outputFormat,
	}, nil
}

func (t *DateTransformer) Transform(_ context.Context, v Value) Outcome {
	date := strings.TrimSpace(v.FieldValue)
	for _, format := range t.inputFormats {
		parsed, err := strftime.Parse(format, date)
		if err != nil {
			continue
		}
		return Present(strftime.Format(t.outputFormat, parsed))
	}
	return Failed(v, "unable to parse as date")
}

func (t *DateTransformer) Type() TransformerType {
	return Date
}

func (t *DateTransformer) Parameters() Parameters {
	formats := make([]any, 0, len(t.inputFormats))
	for _, f := range t.inputFormats {
		formats = append(formats, f)
	}
	return Parameters{
		"input_formats": formats,
		"output_format": t.outputFormat,
	}
}

func DateTransformerDefinition() *Definition {
	return &Definition{
		Parameters: dateParams,
	}
}
