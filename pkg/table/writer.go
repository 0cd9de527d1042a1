// SPDX-License-Identifier: Apache-2.0

package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"unicode/utf8"
)

// Writer writes records as RFC 4180 delimited text, quoting fields with
// double quotes when needed.
type Writer struct {
	w *csv.Writer
}

type WriterOptions struct {
	Delimiter rune
	UseCRLF   bool
}

func DefaultWriterOptions() WriterOptions {
	return WriterOptions{Delimiter: ','}
}

func NewWriter(w io.Writer, opts WriterOptions) (*Writer, error) {
	writer := csv.NewWriter(w)
	if opts.Delimiter != 0 {
		writer.Comma = opts.Delimiter
	}
	writer.UseCRLF = opts.UseCRLF
	if !validOutputDelimiter(writer.Comma) {
		return nil, fmt.Errorf("%w: invalid output delimiter %q", ErrInvalidOptions, writer.Comma)
	}
	return &Writer{w: writer}, nil
}

func (w *Writer) Write(record []string) error {
	return w.w.Write(record)
}

// Flush writes any buffered data to the underlying writer and returns the
// first error found while writing.
func (w *Writer) Flush() error {
	w.w.Flush()
	return w.w.Error()
}

func validOutputDelimiter(r rune) bool {
	return r != '"' && r != '\r' && r != '\n' && utf8.ValidRune(r) && r != utf8.RuneError
}
