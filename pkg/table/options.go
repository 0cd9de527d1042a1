// SPDX-License-Identifier: Apache-2.0

package table

import (
	"errors"
	"fmt"
	"unicode/utf8"
)

// Options describes how a delimited table is framed.
type Options struct {
	Delimiter rune
	Quote     rune
	// Escape is the character escaping the next one within quoted fields.
	// Zero disables it.
	Escape rune
	// DoubleQuote makes two adjacent quotes within a quoted field an escaped
	// quote.
	DoubleQuote bool
	// Terminator is the record terminator. Zero accepts any of \r\n, \n or
	// \r.
	Terminator rune
}

// TerminatorCRLF is the configuration name of the default record
// terminator, accepting any of \r\n, \n or \r.
const TerminatorCRLF = "crlf"

var (
	ErrInvalidOptions = errors.New("invalid table options")
	errMultiCharacter = errors.New("must be a single character")
)

func DefaultOptions() Options {
	return Options{
		Delimiter:   ',',
		Quote:       '"',
		Escape:      0,
		DoubleQuote: true,
		Terminator:  0,
	}
}

func (o Options) Validate() error {
	switch {
	case o.Delimiter == 0 || o.Quote == 0:
		return fmt.Errorf("%w: delimiter and quote are required", ErrInvalidOptions)
	case o.Delimiter == o.Quote:
		return fmt.Errorf("%w: delimiter and quote must differ", ErrInvalidOptions)
	case o.Escape != 0 && (o.Escape == o.Delimiter):
		return fmt.Errorf("%w: escape and delimiter must differ", ErrInvalidOptions)
	case o.isTerminator(o.Delimiter) || o.isTerminator(o.Quote):
		return fmt.Errorf("%w: delimiter and quote must not be record terminators", ErrInvalidOptions)
	case o.Delimiter == utf8.RuneError || o.Quote == utf8.RuneError:
		return fmt.Errorf("%w: invalid character", ErrInvalidOptions)
	}
	return nil
}

func (o Options) isTerminator(r rune) bool {
	if o.Terminator == 0 {
		return r == '\n' || r == '\r'
	}
	return r == o.Terminator
}

// ParseCharacter parses a single character option, such as the delimiter.
// Escape sequences \t, \n and \r are accepted, and an empty string returns 0.
func ParseCharacter(s string) (rune, error) {
	switch s {
	case "":
		return 0, nil
	case `\t`:
		return '\t', nil
	case `\n`:
		return '\n', nil
	case `\r`:
		return '\r', nil
	}
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError || size != len(s) {
		return 0, fmt.Errorf("%q %w", s, errMultiCharacter)
	}
	return r, nil
}

// ParseTerminator parses the record terminator option: "crlf" (or empty) for
// any of \r\n, \n or \r, or a single character.
func ParseTerminator(s string) (rune, error) {
	if s == TerminatorCRLF {
		return 0, nil
	}
	return ParseCharacter(s)
}
