// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestTrimTransformer_Transform(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "ok - no white space", value: "Jon", want: "Jon"},
		{name: "ok - leading and trailing", value: " \tJon Snow\n ", want: "Jon Snow"},
		{name: "ok - unicode white space", value: "\u00a0Jon\u2003", want: "Jon"},
		{name: "ok - only white space", value: " \t ", want: ""},
	}

	transformer, err := NewTrimTransformer(nil)
	require.NoError(t, err)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			got := transformer.Transform(context.Background(), Value{FieldValue: tc.value})
			requireOutcome(t, wantOutcome{value: tc.want}, got)
		})
	}
}

func TestTrimTransformer_Idempotent(t *testing.T) {
	t.Parallel()

	transformer, err := NewTrimTransformer(nil)
	require.NoError(t, err)

	rapid.Check(t, func(t *rapid.T) {
		value := rapid.String().Draw(t, "value")
		once, _ := transformer.Transform(context.Background(), Value{FieldValue: value}).Value()
		twice, _ := transformer.Transform(context.Background(), Value{FieldValue: once}).Value()
		if once != twice {
			t.Fatalf("trim is not idempotent: %q != %q", once, twice)
		}
	})
}

func TestNoneTransformer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Parameters
		value  string

		want    wantOutcome
		wantErr error
	}{
		{name: "excluded - empty", value: "", want: wantOutcome{excluded: true}},
		{name: "excluded - white space", value: " \t\r\n", want: wantOutcome{excluded: true}},
		{name: "excluded - control characters", value: "\x00\x1f ", want: wantOutcome{excluded: true}},
		{name: "ok - not blank", value: " a ", want: wantOutcome{value: " a "}},
		{
			name:   "excluded - custom pattern",
			params: Parameters{"pattern": `\A(?i:n/a)\z`},
			value:  "N/A",
			want:   wantOutcome{excluded: true},
		},
		{
			name:   "ok - custom pattern does not match",
			params: Parameters{"pattern": `\A(?i:n/a)\z`},
			value:  "",
			want:   wantOutcome{value: ""},
		},
		{
			name:    "error - invalid pattern",
			params:  Parameters{"pattern": `(`},
			wantErr: ErrInvalidParameters,
		},
		{
			name:    "error - invalid pattern type",
			params:  Parameters{"pattern": 1},
			wantErr: ErrInvalidParameters,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			transformer, err := NewNoneTransformer(tc.params)
			require.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}

			got := transformer.Transform(context.Background(), Value{FieldValue: tc.value})
			requireOutcome(t, tc.want, got)
		})
	}
}

func TestNewBlankTransformer(t *testing.T) {
	t.Parallel()

	transformer := NewBlankTransformer()
	require.Equal(t, None, transformer.Type())
	require.Equal(t, Parameters{"pattern": BlankPattern}, transformer.Parameters())
	require.True(t, transformer.Transform(context.Background(), Value{FieldValue: "\t"}).IsExcluded())
}

func TestRegexTransformer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Parameters
		value  string

		want    wantOutcome
		wantErr error
	}{
		{
			name: "ok - named groups",
			params: Parameters{
				"pattern":  `(?P<last>\w+),\s*(?P<first>\w+)`,
				"template": "${first} ${last}",
			},
			value: "Snow, Jon",
			want:  wantOutcome{value: "Jon Snow"},
		},
		{
			name: "ok - numbered groups",
			params: Parameters{
				"pattern":  `^(\d{4})(\d{2})(\d{2})$`,
				"template": "$1-$2-$3",
			},
			value: "20240315",
			want:  wantOutcome{value: "2024-03-15"},
		},
		{
			name: "error - no match",
			params: Parameters{
				"pattern":  `^(\d{4})(\d{2})(\d{2})$`,
				"template": "$1-$2-$3",
			},
			value: "March 15",
			want:  wantOutcome{reason: `did not match pattern ^(\d{4})(\d{2})(\d{2})$`},
		},
		{
			name:    "error - missing template",
			params:  Parameters{"pattern": `a`},
			wantErr: ErrRequiredParameter,
		},
		{
			name:    "error - missing pattern",
			params:  Parameters{"template": `a`},
			wantErr: ErrRequiredParameter,
		},
		{
			name:    "error - invalid pattern",
			params:  Parameters{"pattern": `[a`, "template": "a"},
			wantErr: ErrInvalidParameters,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			transformer, err := NewRegexTransformer(tc.params)
			require.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}

			got := transformer.Transform(context.Background(), Value{FieldValue: tc.value})
			requireOutcome(t, tc.want, got)
		})
	}
}

func TestRegexMatchTransformer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params Parameters
		value  string

		want    wantOutcome
		wantErr error
	}{
		{
			name:   "ok - match",
			params: Parameters{"pattern": `^[A-Z]{2}$`},
			value:  "CA",
			want:   wantOutcome{value: "CA"},
		},
		{
			name:   "error - no match",
			params: Parameters{"pattern": `^[A-Z]{2}$`},
			value:  "California",
			want:   wantOutcome{reason: "did not match pattern ^[A-Z]{2}$"},
		},
		{
			name:   "ok - negated no match",
			params: Parameters{"pattern": `(?i)^test`, "negate": true},
			value:  "Jon",
			want:   wantOutcome{value: "Jon"},
		},
		{
			name:   "error - negated match",
			params: Parameters{"pattern": `(?i)^test`, "negate": true},
			value:  "Test User",
			want:   wantOutcome{reason: "matched exclusionary pattern (?i)^test"},
		},
		{
			name:    "error - invalid negate type",
			params:  Parameters{"pattern": `a`, "negate": "yes"},
			wantErr: ErrInvalidParameters,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			transformer, err := NewRegexMatchTransformer(tc.params)
			require.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}

			got := transformer.Transform(context.Background(), Value{FieldValue: tc.value})
			requireOutcome(t, tc.want, got)
		})
	}
}

func TestCapitalize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		value string
		want  string
	}{
		{name: "lower case", value: "jon snow", want: "Jon Snow"},
		{name: "upper case", value: "JON SNOW", want: "Jon Snow"},
		{name: "collapses white space", value: "  jon \t  snow ", want: "Jon Snow"},
		{name: "apostrophe", value: "o'BRIEN", want: "O'brien"},
		{name: "hyphen splits words", value: "smith-JONES", want: "Smith Jones"},
		{name: "non ascii", value: "élodie ÅSTRÖM", want: "Élodie Åström"},
		{name: "digits", value: "3rd street", want: "3rd Street"},
		{name: "full case mapping", value: "ßtraße", want: "SStraße"},
		{name: "punctuation only", value: " - , ", want: ""},
		{name: "empty", value: "", want: ""},
	}

	transformer, err := NewCapitalizeTransformer(nil)
	require.NoError(t, err)

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			require.Equal(t, tc.want, CapitalizeWords(tc.value))
			got := transformer.Transform(context.Background(), Value{FieldValue: tc.value})
			requireOutcome(t, wantOutcome{value: tc.want}, got)
		})
	}
}

func TestCapitalize_Idempotent(t *testing.T) {
	t.Parallel()

	rapid.Check(t, func(t *rapid.T) {
		value := rapid.StringOf(rapid.RuneFrom([]rune("abcxyzABCXYZ '-\t"))).Draw(t, "value")
		once := CapitalizeWords(value)
		if twice := CapitalizeWords(once); once != twice {
			t.Fatalf("capitalize is not idempotent: %q != %q", once, twice)
		}
		if strings.Contains(once, "  ") {
			t.Fatalf("capitalized value %q has repeated spaces", once)
		}
	})
}
