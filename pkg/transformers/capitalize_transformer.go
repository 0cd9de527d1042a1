// SPDX-License-Identifier: Apache-2.0

package transformers

import (
	"context"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// CapitalizeTransformer splits the field into words following the Unicode
// word boundary rules (UAX #29), upper cases the first letter of every word,
// lower cases the rest, and joins them back with single spaces. Segments
// without letters or digits (spaces, punctuation such as hyphens) are
// dropped, while apostrophes within a word are kept.
type CapitalizeTransformer struct{}

func NewCapitalizeTransformer(params Parameters) (*CapitalizeTransformer, error) {
	if err := ValidateParameters(params, nil); err != nil {
		return nil, err
	}
	return &CapitalizeTransformer{}, nil
}

func (t *CapitalizeTransformer) Transform(_ context.Context, v Value) Outcome {
	return Present(CapitalizeWords(v.FieldValue))
}

func (t *CapitalizeTransformer) Type() TransformerType {
	return Capitalize
}

func (t *CapitalizeTransformer) Parameters() Parameters {
	return Parameters{}
}

func CapitalizeTransformerDefinition() *Definition {
	return &Definition{}
}

// CapitalizeWords capitalizes every word of the string on input. Case mapping
// is full, so a leading "ß" becomes "SS".
func CapitalizeWords(str string) string {
	var b strings.Builder
	b.Grow(len(str))

	// casers keep state and cannot be shared between goroutines
	upper := cases.Upper(language.Und)
	lower := cases.Lower(language.Und)

	state := -1
	var word string
	for len(str) > 0 {
		word, str, state = uniseg.FirstWordInString(str, state)
		if !isWord(word) {
			continue
		}
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		capitalizeWord(&b, word, upper, lower)
	}
	return b.String()
}

func isWord(segment string) bool {
	for _, r := range segment {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			return true
		}
	}
	return false
}

func capitalizeWord(b *strings.Builder, word string, upper, lower cases.Caser) {
	_, size := utf8.DecodeRuneInString(word)
	b.WriteString(upper.String(word[:size]))
	b.WriteString(lower.String(word[size:]))
}
