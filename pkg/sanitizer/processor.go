// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/jonboulle/clockwork"

	"github.com/xataio/csvsanity/internal/progress"
	loglib "github.com/xataio/csvsanity/pkg/log"
	"github.com/xataio/csvsanity/pkg/ruleset"
	"github.com/xataio/csvsanity/pkg/table"
)

// Processor applies a ruleset to every record of a table, writing the
// transformed records to the primary output and the errors found to the
// error output.
type Processor struct {
	ruleset     *ruleset.Ruleset
	logger      loglib.Logger
	clock       clockwork.Clock
	progressBar progress.Bar
	inputOpts   table.Options
	outputOpts  table.WriterOptions
}

type Option func(*Processor)

const (
	recordNumberHeader = "Record Number"
	// the header is record number 1
	firstRecordNumber = 2
)

var (
	ErrReadingHeaders = errors.New("reading headers")
	errNoHeaders      = errors.New("table is empty")
)

// ErrorHeaders is the header row of the error output.
var ErrorHeaders = []string{recordNumberHeader, "Field Name", "Field Value", "Reason"}

func NewProcessor(r *ruleset.Ruleset, opts ...Option) *Processor {
	p := &Processor{
		ruleset:    r,
		logger:     loglib.NewNoopLogger(),
		clock:      clockwork.NewRealClock(),
		inputOpts:  table.DefaultOptions(),
		outputOpts: table.DefaultWriterOptions(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func WithLogger(l loglib.Logger) Option {
	return func(p *Processor) {
		p.logger = loglib.WithModule(l, "sanitizer")
	}
}

func WithClock(c clockwork.Clock) Option {
	return func(p *Processor) {
		p.clock = c
	}
}

// WithProgressBar advances the bar with the bytes read from the input.
func WithProgressBar(bar progress.Bar) Option {
	return func(p *Processor) {
		p.progressBar = bar
	}
}

func WithInputOptions(opts table.Options) Option {
	return func(p *Processor) {
		p.inputOpts = opts
	}
}

func WithOutputOptions(opts table.WriterOptions) Option {
	return func(p *Processor) {
		p.outputOpts = opts
	}
}

// Process reads the header row, validates the ruleset against it and
// processes every record. Per record errors are written to the error output
// and never stop the processing. Failing to read the headers, invalid rules
// or failing to write to the outputs are returned as errors.
func (p *Processor) Process(ctx context.Context, in io.Reader, out, errOut io.Writer) (*Summary, error) {
	start := p.clock.Now()

	if p.progressBar != nil {
		in = progress.NewReader(in, p.progressBar)
		defer p.progressBar.Close()
	}

	reader, err := table.NewReader(in, p.inputOpts)
	if err != nil {
		return nil, err
	}

	headers, err := readHeaders(reader)
	if err != nil {
		return nil, err
	}

	if err := p.ruleset.ValidateRules(headers); err != nil {
		return nil, fmt.Errorf("validating rules: %w", err)
	}

	outWriter, err := table.NewWriter(out, p.outputOpts)
	if err != nil {
		return nil, err
	}
	errWriter, err := table.NewWriter(errOut, p.outputOpts)
	if err != nil {
		return nil, err
	}

	if err := outWriter.Write(append([]string{recordNumberHeader}, headers...)); err != nil {
		return nil, fmt.Errorf("writing output headers: %w", err)
	}
	if err := errWriter.Write(ErrorHeaders); err != nil {
		return nil, fmt.Errorf("writing error headers: %w", err)
	}

	p.logger.Info("processing records", loglib.Fields{"headers": headers, "rules": p.ruleset.Len()})

	summary := &Summary{}
	processErr := p.processRecords(ctx, reader, headers, outWriter, errWriter, summary)
	summary.Duration = p.clock.Since(start)

	if err := errors.Join(processErr, flush(outWriter, "output"), flush(errWriter, "error output")); err != nil {
		return summary, err
	}
	return summary, nil
}

func (p *Processor) processRecords(ctx context.Context, reader *table.Reader, headers []string, outWriter, errWriter *table.Writer, summary *Summary) error {
	for recordNumber := firstRecordNumber; ; recordNumber++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return nil
		}

		recordNum := strconv.Itoa(recordNumber)
		var parseErr *table.ParseError
		switch {
		case errors.As(err, &parseErr):
			summary.Records++
			summary.FailedRecords++
			summary.ParseErrors++
			p.logger.Debug("skipping malformed record", loglib.Fields{
				loglib.RecordNumberField: recordNumber,
				"error":                  parseErr.Error(),
			})
			if err := errWriter.Write([]string{recordNum, "", "", parseErr.Error()}); err != nil {
				return fmt.Errorf("writing error output: %w", err)
			}
			continue
		case err != nil:
			return fmt.Errorf("reading record %d: %w", recordNumber, err)
		}

		summary.Records++
		transformed := p.ruleset.ApplyRules(ctx, headers, record, recordNumber)
		if err := outWriter.Write(append([]string{recordNum}, transformed.Values(len(headers))...)); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}

		if len(transformed.Errors) == 0 {
			continue
		}
		summary.FailedRecords++
		summary.TransformErrors += len(transformed.Errors)
		for _, transformErr := range transformed.Errors {
			if err := errWriter.Write([]string{recordNum, transformErr.FieldName, transformErr.FieldValue, transformErr.Reason}); err != nil {
				return fmt.Errorf("writing error output: %w", err)
			}
		}
	}
}

func readHeaders(reader *table.Reader) ([]string, error) {
	headers, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			err = errNoHeaders
		}
		return nil, fmt.Errorf("%w: %w", ErrReadingHeaders, err)
	}
	return headers, nil
}

func flush(w *table.Writer, name string) error {
	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing %s: %w", name, err)
	}
	return nil
}
