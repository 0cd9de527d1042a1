// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Transformer applies a single field level transformation. Implementations
// are immutable once built and safe for concurrent use.
type Transformer interface {
	Transform(context.Context, Value) Outcome
	Type() TransformerType
	// Parameters returns the normalised parameters the transformer was built
	// with, including defaults.
	Parameters() Parameters
}

// Value is the input of a transformation: the field value along with the
// name of its column and the number of the record it belongs to.
type Value struct {
	FieldValue   string
	FieldName    string
	RecordNumber int
}

type Config struct {
	Name       TransformerType
	Parameters Parameters
}

type TransformerType string

const (
	Trim        TransformerType = "trim"
	None        TransformerType = "none"
	Regex       TransformerType = "regex"
	RegexMatch  TransformerType = "regex_match"
	Capitalize  TransformerType = "capitalize"
	Email       TransformerType = "email"
	Number      TransformerType = "number"
	Date        TransformerType = "date"
	Choice      TransformerType = "choice"
	Zipcode     TransformerType = "zipcode"
	PhoneNumber TransformerType = "phone_number"
)

type Parameters map[string]any

// Definition describes the parameters a transformer accepts.
type Definition struct {
	Parameters []Parameter
}

type Parameter struct {
	Name          string
	SupportedType string
	Default       any
	Required      bool
	Values        []any
}

func (d *Definition) ParameterNames() []string {
	names := make([]string, 0, len(d.Parameters))
	for _, p := range d.Parameters {
		names = append(names, p.Name)
	}
	return names
}

var (
	ErrUnsupportedTransformer = errors.New("unsupported transformer config")
	ErrInvalidParameters      = errors.New("invalid transformer parameters")
	ErrUnknownParameter       = errors.New("unknown transformer parameter")
	ErrRequiredParameter      = errors.New("missing required transformer parameter")
)

// ValidateParameters makes sure all the parameters on input are part of the
// list of expected parameter names.
func ValidateParameters(params Parameters, validNames []string) error {
	for name := range params {
		found := false
		for _, valid := range validNames {
			if name == valid {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: %q, expected one of [%s]", ErrUnknownParameter, name, strings.Join(validNames, ", "))
		}
	}
	return nil
}

func FindParameter[T any](params Parameters, name string) (T, bool, error) {
	valAny, found := params[name]
	if !found {
		return *new(T), false, nil
	}

	val, ok := valAny.(T)
	if !ok {
		return *new(T), true, ErrInvalidParameters
	}

	return val, true, nil
}

func FindParameterWithDefault[T any](params Parameters, name string, defaultVal T) (T, error) {
	val, found, err := FindParameter[T](params, name)
	if err != nil {
		return val, err
	}
	if !found {
		return defaultVal, nil
	}
	return val, nil
}

// FindParameterArray returns the array parameter with the given name. Config
// decoders produce []any, so every item is type checked individually.
func FindParameterArray[T any](params Parameters, name string) ([]T, bool, error) {
	valAny, found := params[name]
	if !found {
		return nil, false, nil
	}

	switch val := valAny.(type) {
	case []T:
		return val, true, nil
	case []any:
		arr := make([]T, 0, len(val))
		for _, item := range val {
			v, ok := item.(T)
			if !ok {
				return nil, true, ErrInvalidParameters
			}
			arr = append(arr, v)
		}
		return arr, true, nil
	default:
		return nil, true, ErrInvalidParameters
	}
}

// findRequiredParameter is a FindParameter that fails when the parameter is
// not present.
func findRequiredParameter[T any](params Parameters, name string) (T, error) {
	val, found, err := FindParameter[T](params, name)
	if err != nil {
		return val, err
	}
	if !found {
		return val, fmt.Errorf("%w: %s", ErrRequiredParameter, name)
	}
	return val, nil
}
