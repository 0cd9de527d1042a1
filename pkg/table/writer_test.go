// SPDX-License-Identifier: Apache-2.0

package table

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWriter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		opts    WriterOptions
		records [][]string

		want    string
		wantErr error
	}{
		{
			name: "default",
			opts: DefaultWriterOptions(),
			records: [][]string{
				{"Record Number", "Name", "Notes"},
				{"2", "Jon", `said "hi", left`},
				{"3", "", "multi\nline"},
			},
			want: "Record Number,Name,Notes\n2,Jon,\"said \"\"hi\"\", left\"\n3,,\"multi\nline\"\n",
		},
		{
			name:    "tab delimited with crlf",
			opts:    WriterOptions{Delimiter: '\t', UseCRLF: true},
			records: [][]string{{"a", "b"}, {"1", "2"}},
			want:    "a\tb\r\n1\t2\r\n",
		},
		{
			name:    "error - invalid delimiter",
			opts:    WriterOptions{Delimiter: '"'},
			wantErr: ErrInvalidOptions,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			w, err := NewWriter(&buf, tc.opts)
			require.ErrorIs(t, err, tc.wantErr)
			if err != nil {
				return
			}
			for _, record := range tc.records {
				require.NoError(t, w.Write(record))
			}
			require.NoError(t, w.Flush())
			require.Equal(t, tc.want, buf.String())
		})
	}
}

func TestWriter_ReadBack(t *testing.T) {
	t.Parallel()

	records := [][]string{
		{"Record Number", "Field Name", "Field Value", "Reason"},
		{"2", "Zip", "12 34\r\n", `not a "valid" zipcode`},
	}

	var buf bytes.Buffer
	w, err := NewWriter(&buf, DefaultWriterOptions())
	require.NoError(t, err)
	for _, record := range records {
		require.NoError(t, w.Write(record))
	}
	require.NoError(t, w.Flush())

	r, err := NewReader(strings.NewReader(buf.String()), DefaultOptions())
	require.NoError(t, err)
	got := readAll(t, r)
	require.Len(t, got, 2)
	for i, res := range got {
		require.NoError(t, res.err)
		require.Equal(t, records[i], res.record)
	}
}
