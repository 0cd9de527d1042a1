// SPDX-License-Identifier: Apache-2.0

package table

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/unicode"
)

type readResult struct {
	record []string
	err    error
}

func readAll(t *testing.T, r *Reader) []readResult {
	t.Helper()
	results := []readResult{}
	for i := 0; ; i++ {
		require.Less(t, i, 100, "reader did not reach EOF")
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			return results
		}
		results = append(results, readResult{record: record, err: err})
	}
}

func TestReader_Read(t *testing.T) {
	t.Parallel()

	escaped := DefaultOptions()
	escaped.Escape = '\\'
	escaped.DoubleQuote = false

	quoteEscape := DefaultOptions()
	quoteEscape.Escape = '"'
	quoteEscape.DoubleQuote = false

	tsv := DefaultOptions()
	tsv.Delimiter = '\t'
	tsv.Terminator = ';'

	tests := []struct {
		name  string
		input string
		opts  Options

		want []readResult
	}{
		{
			name:  "simple",
			input: "a,b\n1,2\n",
			opts:  DefaultOptions(),
			want:  []readResult{{record: []string{"a", "b"}}, {record: []string{"1", "2"}}},
		},
		{
			name:  "crlf and lone cr terminators",
			input: "a,b\r\n1,2\r3,4",
			opts:  DefaultOptions(),
			want: []readResult{
				{record: []string{"a", "b"}},
				{record: []string{"1", "2"}},
				{record: []string{"3", "4"}},
			},
		},
		{
			name:  "quoted fields with delimiters and new lines",
			input: "\"a,b\",\"c\nd\"\n",
			opts:  DefaultOptions(),
			want:  []readResult{{record: []string{"a,b", "c\nd"}}},
		},
		{
			name:  "double quotes",
			input: `"say ""hi""",""` + "\n",
			opts:  DefaultOptions(),
			want:  []readResult{{record: []string{`say "hi"`, ""}}},
		},
		{
			name:  "escape character",
			input: `"say \"hi\"","a\\b"` + "\n",
			opts:  escaped,
			want:  []readResult{{record: []string{`say "hi"`, `a\b`}}},
		},
		{
			name:  "escape equal to quote closes the field",
			input: "\"a\",b\nc,d\n",
			opts:  quoteEscape,
			want:  []readResult{{record: []string{"a", "b"}}, {record: []string{"c", "d"}}},
		},
		{
			name:  "flexible rows",
			input: "a,b\n1\n1,2,3\n",
			opts:  DefaultOptions(),
			want: []readResult{
				{record: []string{"a", "b"}},
				{record: []string{"1"}},
				{record: []string{"1", "2", "3"}},
			},
		},
		{
			name:  "empty lines are skipped",
			input: "a\n\n\r\nb\n",
			opts:  DefaultOptions(),
			want:  []readResult{{record: []string{"a"}}, {record: []string{"b"}}},
		},
		{
			name:  "empty trailing field",
			input: "a,\n,\n",
			opts:  DefaultOptions(),
			want:  []readResult{{record: []string{"a", ""}}, {record: []string{"", ""}}},
		},
		{
			name:  "white space is kept",
			input: " a , b \n",
			opts:  DefaultOptions(),
			want:  []readResult{{record: []string{" a ", " b "}}},
		},
		{
			name:  "custom delimiter and terminator",
			input: "a\tb;c\td;",
			opts:  tsv,
			want:  []readResult{{record: []string{"a", "b"}}, {record: []string{"c", "d"}}},
		},
		{
			name:  "bare quote",
			input: "a,b\"c\nx,y\n",
			opts:  DefaultOptions(),
			want: []readResult{
				{err: &ParseError{StartLine: 1, Line: 1, Column: 4, Err: ErrBareQuote}},
				{record: []string{"x", "y"}},
			},
		},
		{
			name:  "character after closing quote",
			input: "1,2\n\"a\"b,c\nx\n",
			opts:  DefaultOptions(),
			want: []readResult{
				{record: []string{"1", "2"}},
				{err: &ParseError{StartLine: 2, Line: 2, Column: 4, Err: ErrTrailingCharacter}},
				{record: []string{"x"}},
			},
		},
		{
			name:  "unterminated quote",
			input: "a\n\"bc\n",
			opts:  DefaultOptions(),
			want: []readResult{
				{record: []string{"a"}},
				{err: &ParseError{StartLine: 2, Line: 3, Column: 0, Err: ErrUnterminatedQuote}},
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReader(strings.NewReader(tc.input), tc.opts)
			require.NoError(t, err)
			require.Equal(t, tc.want, readAll(t, r))
		})
	}
}

func TestParseError_Error(t *testing.T) {
	t.Parallel()

	err := error(&ParseError{StartLine: 3, Line: 4, Column: 2, Err: ErrUnterminatedQuote})
	require.Equal(t, "record on line 3: unterminated quoted field (line 4, column 2)", err.Error())
	require.ErrorIs(t, err, ErrUnterminatedQuote)
}

func TestNewReader_InvalidOptions(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		opts Options
	}{
		{name: "zero options", opts: Options{}},
		{name: "delimiter equals quote", opts: Options{Delimiter: '"', Quote: '"'}},
		{name: "delimiter is a terminator", opts: Options{Delimiter: '\n', Quote: '"'}},
		{name: "delimiter is the custom terminator", opts: Options{Delimiter: ';', Quote: '"', Terminator: ';'}},
		{name: "escape equals delimiter", opts: Options{Delimiter: ',', Quote: '"', Escape: ','}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := NewReader(strings.NewReader(""), tc.opts)
			require.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestParseCharacter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string

		want    rune
		wantErr error
	}{
		{input: ",", want: ','},
		{input: `\t`, want: '\t'},
		{input: "\t", want: '\t'},
		{input: "|", want: '|'},
		{input: "", want: 0},
		{input: "ab", wantErr: errMultiCharacter},
	}

	for _, tc := range tests {
		t.Run(tc.input, func(t *testing.T) {
			t.Parallel()

			got, err := ParseCharacter(tc.input)
			require.ErrorIs(t, err, tc.wantErr)
			require.Equal(t, tc.want, got)
		})
	}

	got, err := ParseTerminator(TerminatorCRLF)
	require.NoError(t, err)
	require.Equal(t, rune(0), got)
}

func TestReader_byteOrderMark(t *testing.T) {
	t.Parallel()

	utf16, err := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewEncoder().String("name,city\nzoë,paris\n")
	require.NoError(t, err)

	tests := []struct {
		name  string
		input string
	}{
		{
			name:  "utf-8 bom",
			input: "\ufeffname,city\nzoë,paris\n",
		},
		{
			name:  "utf-16 bom",
			input: utf16,
		},
		{
			name:  "no bom",
			input: "name,city\nzoë,paris\n",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			r, err := NewReader(strings.NewReader(tc.input), DefaultOptions())
			require.NoError(t, err)
			require.Equal(t, []readResult{
				{record: []string{"name", "city"}},
				{record: []string{"zoë", "paris"}},
			}, readAll(t, r))
		})
	}
}
