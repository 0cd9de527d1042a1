// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xataio/csvsanity/cmd/config"
	"github.com/xataio/csvsanity/internal/log/zerolog"
	"github.com/xataio/csvsanity/pkg/sanitizer"
)

var runCmd = &cobra.Command{
	Use:     "run [INPUT_FILE]",
	Short:   "Run applies the rules to every record of the input file, writing the sanitized records and the errors found to separate files",
	Args:    cobra.MaximumNArgs(1),
	PreRunE: runFlagBinding,
	RunE:    withProfiling(withSignalWatcher(run)),
	Example: `
	csvsanity run customers.csv
	csvsanity run customers.csv -o clean.csv -e rejected.csv -r rules.yaml
	csvsanity run customers.tsv --delimiter '\t' --quote "'" --no-double-quote
	csvsanity run --config config.yaml --log-level debug
	csvsanity run --config config.env`,
}

func run(ctx context.Context, cmd *cobra.Command, _ []string) error {
	logger := zerolog.NewLogger(&zerolog.Config{
		LogLevel: viper.GetString(config.LogLevelEnv),
	})
	zerolog.SetGlobalLogger(logger)

	sanitizerConfig, err := config.ParseSanitizerConfig()
	if err != nil {
		return fmt.Errorf("parsing sanitizer config: %w", err)
	}

	provider, err := newInstrumentationProvider(ctx)
	if err != nil {
		return err
	}
	defer provider.Close()

	summary, err := sanitizer.Run(ctx, zerolog.NewStdLogger(logger), sanitizerConfig, provider.NewInstrumentation("run"))
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), summary.String())
	return nil
}

func runFlagBinding(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		viper.Set("input.path", args[0])
		viper.Set("CSVSANITY_INPUT_PATH", args[0])
	}

	// to be able to overwrite configuration with flags when yaml config file is
	// provided
	viper.BindPFlag("output.path", cmd.Flags().Lookup("output"))
	viper.BindPFlag("output.errors_path", cmd.Flags().Lookup("errors"))
	viper.BindPFlag("output.delimiter", cmd.Flags().Lookup("output-delimiter"))
	viper.BindPFlag("output.progress", cmd.Flags().Lookup("progress"))
	viper.BindPFlag("input.delimiter", cmd.Flags().Lookup("delimiter"))
	viper.BindPFlag("input.quote", cmd.Flags().Lookup("quote"))
	viper.BindPFlag("input.escape", cmd.Flags().Lookup("escape"))
	viper.BindPFlag("input.terminator", cmd.Flags().Lookup("terminator"))

	// to be able to overwrite configuration with flags when env config file is
	// provided or when no configuration is provided
	viper.BindPFlag("CSVSANITY_OUTPUT_PATH", cmd.Flags().Lookup("output"))
	viper.BindPFlag("CSVSANITY_OUTPUT_ERRORS_PATH", cmd.Flags().Lookup("errors"))
	viper.BindPFlag("CSVSANITY_OUTPUT_DELIMITER", cmd.Flags().Lookup("output-delimiter"))
	viper.BindPFlag("CSVSANITY_OUTPUT_PROGRESS", cmd.Flags().Lookup("progress"))
	viper.BindPFlag("CSVSANITY_INPUT_DELIMITER", cmd.Flags().Lookup("delimiter"))
	viper.BindPFlag("CSVSANITY_INPUT_QUOTE", cmd.Flags().Lookup("quote"))
	viper.BindPFlag("CSVSANITY_INPUT_ESCAPE", cmd.Flags().Lookup("escape"))
	viper.BindPFlag("CSVSANITY_INPUT_TERMINATOR", cmd.Flags().Lookup("terminator"))

	if cmd.Flags().Lookup("no-double-quote").Changed {
		doubleQuote := cmd.Flags().Lookup("no-double-quote").Value.String() != trueStr
		viper.Set("input.double_quote", doubleQuote)
		viper.Set("CSVSANITY_INPUT_DOUBLE_QUOTE", doubleQuote)
	}

	rulesFileFlagBinding(cmd)
	return nil
}

func rulesFileFlagBinding(cmd *cobra.Command) {
	viper.BindPFlag("rules-file", cmd.Flags().Lookup("rules-file"))
}
