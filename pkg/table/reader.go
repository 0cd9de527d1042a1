// SPDX-License-Identifier: Apache-2.0

package table

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Reader reads records from a delimited table. Records may have any number
// of fields. A malformed record returns a *ParseError, after which the
// reader skips to the next record so reading can continue.
type Reader struct {
	r    *bufio.Reader
	opts Options

	line   int
	column int
}

var (
	ErrBareQuote         = errors.New("bare quote in non-quoted field")
	ErrTrailingCharacter = errors.New("extraneous character after closing quote")
	ErrUnterminatedQuote = errors.New("unterminated quoted field")
)

// ParseError describes a malformed record. StartLine is the line the record
// starts on, Line and Column locate the error.
type ParseError struct {
	StartLine int
	Line      int
	Column    int
	Err       error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record on line %d: %v (line %d, column %d)", e.StartLine, e.Err, e.Line, e.Column)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// NewReader returns a reader over UTF-8 input. A leading byte order mark is
// dropped, and UTF-16 input starting with one is decoded to UTF-8.
func NewReader(r io.Reader, opts Options) (*Reader, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Reader{
		r:    bufio.NewReader(transform.NewReader(r, unicode.BOMOverride(encoding.Nop.NewDecoder()))),
		opts: opts,
		line: 1,
	}, nil
}

// Read returns the next record, skipping empty lines. It returns io.EOF when
// there are no more records.
func (r *Reader) Read() ([]string, error) {
	for {
		record, err := r.readRecord()
		if err != nil {
			return nil, err
		}
		if record != nil {
			return record, nil
		}
	}
}

// readRecord returns a nil record with no error for empty lines.
func (r *Reader) readRecord() ([]string, error) {
	var (
		startLine  = r.line
		fields     []string
		field      strings.Builder
		fieldStart = true
		quoted     bool
		closed     bool
		empty      = true
	)

	endField := func() {
		fields = append(fields, field.String())
		field.Reset()
		fieldStart, closed = true, false
	}

	for {
		c, err := r.readRune()
		if errors.Is(err, io.EOF) {
			if quoted {
				return nil, r.parseError(startLine, ErrUnterminatedQuote)
			}
			if empty {
				return nil, io.EOF
			}
			endField()
			return fields, nil
		}
		if err != nil {
			return nil, err
		}

		if quoted {
			// the quote wins over an escape set to the same character
			switch {
			case c == r.opts.Quote:
				if r.opts.DoubleQuote && r.peekRune() == r.opts.Quote {
					r.readRune() //nolint:errcheck
					field.WriteRune(c)
					continue
				}
				quoted, closed = false, true
			case r.opts.Escape != 0 && c == r.opts.Escape:
				escaped, err := r.readRune()
				if err != nil {
					if errors.Is(err, io.EOF) {
						return nil, r.parseError(startLine, ErrUnterminatedQuote)
					}
					return nil, err
				}
				field.WriteRune(escaped)
			default:
				field.WriteRune(c)
			}
			continue
		}

		switch {
		case r.opts.isTerminator(c):
			r.consumeCRLF(c)
			if empty {
				// empty line
				return nil, nil
			}
			endField()
			return fields, nil
		case c == r.opts.Delimiter:
			empty = false
			endField()
		case closed:
			err := r.parseError(startLine, ErrTrailingCharacter)
			return nil, r.resync(err)
		case c == r.opts.Quote && fieldStart:
			empty = false
			quoted, fieldStart = true, false
		case c == r.opts.Quote:
			err := r.parseError(startLine, ErrBareQuote)
			return nil, r.resync(err)
		default:
			empty = false
			fieldStart = false
			field.WriteRune(c)
		}
	}
}

// resync skips the rest of the malformed record, up to and including the
// next record terminator.
func (r *Reader) resync(parseErr error) error {
	for {
		c, err := r.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return parseErr
			}
			return err
		}
		if r.opts.isTerminator(c) {
			r.consumeCRLF(c)
			return parseErr
		}
	}
}

func (r *Reader) parseError(startLine int, err error) *ParseError {
	return &ParseError{
		StartLine: startLine,
		Line:      r.line,
		Column:    r.column,
		Err:       err,
	}
}

// consumeCRLF consumes the \n of a \r\n terminator.
func (r *Reader) consumeCRLF(c rune) {
	if r.opts.Terminator == 0 && c == '\r' && r.peekRune() == '\n' {
		r.readRune() //nolint:errcheck
	}
}

func (r *Reader) readRune() (rune, error) {
	c, _, err := r.r.ReadRune()
	if err != nil {
		return 0, err
	}
	switch {
	case c == '\n':
		r.line++
		r.column = 0
	case c == '\r' && r.peekRune() != '\n':
		r.line++
		r.column = 0
	default:
		r.column++
	}
	return c, nil
}

// peekRune returns the next rune without consuming it, or 0 if there is
// none.
func (r *Reader) peekRune() rune {
	c, _, err := r.r.ReadRune()
	if err != nil {
		return 0
	}
	_ = r.r.UnreadRune()
	return c
}
