// SPDX-License-Identifier: Apache-2.0

package sanitizer

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/rs/xid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/xataio/csvsanity/internal/progress"
	loglib "github.com/xataio/csvsanity/pkg/log"
	"github.com/xataio/csvsanity/pkg/otel"
	"github.com/xataio/csvsanity/pkg/ruleset"
	"github.com/xataio/csvsanity/pkg/table"
	"github.com/xataio/csvsanity/pkg/transformers/builder"
)

// Run processes the configured input file, writing the sanitized records and
// the errors found to the configured output files.
func Run(ctx context.Context, logger loglib.Logger, config *Config, instrumentation *otel.Instrumentation) (summary *Summary, err error) {
	if config == nil {
		return nil, errors.New("sanitizer run: config cannot be nil")
	}
	if err := config.IsValid(); err != nil {
		return nil, fmt.Errorf("incompatible configuration: %w", err)
	}

	ctx, span := otel.StartSpan(ctx, instrumentation.TracerOrNil(), "sanitizer.Run", otel.FileKey.String(config.Input.Path))
	defer func() {
		otel.EndSpan(span, err, summaryAttributes(summary)...)
	}()

	logger = loglib.NewLogger(logger).WithFields(loglib.Fields{
		loglib.RunIDField: xid.New().String(),
		loglib.FileField:  config.Input.Path,
	})

	rules, err := buildRuleset(logger, &config.Rules, instrumentation)
	if err != nil {
		return nil, err
	}

	// validate before any output file is created
	headers, err := readFileHeaders(config.Input.Path, config.Input.Table)
	if err != nil {
		return nil, err
	}
	if err := rules.ValidateRules(headers); err != nil {
		return nil, fmt.Errorf("validating rules: %w", err)
	}

	in, err := os.Open(config.Input.Path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer in.Close()

	opts := []Option{
		WithLogger(logger),
		WithInputOptions(config.Input.Table),
		WithOutputOptions(config.Output.Table),
	}
	if config.Output.Progress {
		size := int64(-1)
		if info, err := in.Stat(); err == nil {
			size = info.Size()
		}
		opts = append(opts, WithProgressBar(progress.NewBytesBar(size, "processing "+config.Input.Path, os.Stderr)))
	}

	out, err := os.Create(config.Output.Path)
	if err != nil {
		return nil, fmt.Errorf("creating output file: %w", err)
	}
	errOut, err := os.Create(config.Output.ErrorsPath)
	if err != nil {
		out.Close()
		return nil, fmt.Errorf("creating errors file: %w", err)
	}

	summary, processErr := NewProcessor(rules, opts...).Process(ctx, in, out, errOut)
	if err := errors.Join(processErr, closeFile(out), closeFile(errOut)); err != nil {
		logger.Error(err, "processing input file")
		return summary, err
	}

	logger.Info("input file processed", summary.logFields())
	return summary, nil
}

func summaryAttributes(s *Summary) []attribute.KeyValue {
	if s == nil {
		return nil
	}
	return []attribute.KeyValue{
		otel.RecordsKey.Int(s.Records),
		otel.FailedRecordsKey.Int(s.FailedRecords),
	}
}

func buildRuleset(logger loglib.Logger, cfg *ruleset.Config, instrumentation *otel.Instrumentation) (*ruleset.Ruleset, error) {
	var builderOpts []builder.Option
	if instrumentation.IsEnabled() {
		builderOpts = append(builderOpts, builder.WithInstrumentation(instrumentation))
	}

	rules, err := ruleset.NewRulesetFromConfig(cfg, builder.NewTransformerBuilder(builderOpts...), ruleset.WithLogger(logger))
	if err != nil {
		return nil, fmt.Errorf("building ruleset: %w", err)
	}
	return rules, nil
}

func readFileHeaders(path string, opts table.Options) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening input file: %w", err)
	}
	defer f.Close()

	reader, err := table.NewReader(f, opts)
	if err != nil {
		return nil, err
	}
	return readHeaders(reader)
}

func closeFile(f *os.File) error {
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", f.Name(), err)
	}
	return nil
}
