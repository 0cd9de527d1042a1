// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xataio/csvsanity/cmd/config"
	"github.com/xataio/csvsanity/internal/profiling"
	"github.com/xataio/csvsanity/pkg/otel"
)

// Env is the environment the binary was built for, if any.
var Env string

const trueStr = "true"

func Prepare() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:          "csvsanity",
		Short:        "csvsanity cleans up delimited tables by applying a set of field transformation rules",
		SilenceUsage: true,
		Version:      version(),
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Load(); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}

			return nil
		},
	}

	viper.AutomaticEnv()

	// Flag definition

	// root cmd
	rootCmd.PersistentFlags().StringP("config", "c", "", ".env or .yaml config file to use with csvsanity if any")
	rootCmd.PersistentFlags().String("log-level", "info", "log level for the application. One of trace, debug, info, warn, error, fatal, panic")

	// run cmd
	runCmd.Flags().StringP("output", "o", "", "Output file where the sanitized records will be written (default \"output.csv\")")
	runCmd.Flags().StringP("errors", "e", "", "Output file where the record errors will be written (default \"errors.csv\")")
	runCmd.Flags().StringP("rules-file", "r", "", "Path to a YAML or JSON file containing the rules (default \"ruleset.json\" when no rules are configured)")
	runCmd.Flags().String("delimiter", "", "Input field delimiter (default \",\")")
	runCmd.Flags().String("quote", "", "Input quote character (default '\"')")
	runCmd.Flags().String("escape", "", "Input escape character within quoted fields, disabled by default")
	runCmd.Flags().Bool("no-double-quote", false, "Do not treat two adjacent quotes within a quoted field as an escaped quote")
	runCmd.Flags().String("terminator", "", "Input record terminator, either crlf (any of \\r\\n, \\n or \\r) or a single character (default \"crlf\")")
	runCmd.Flags().String("output-delimiter", "", "Output field delimiter (default \",\")")
	runCmd.Flags().Bool("progress", false, "Whether to render a progress bar over the input file on stderr")
	runCmd.Flags().Bool("profile", false, "Whether to produce CPU and memory profile files")

	// validate cmd
	// validate rules cmd
	validateRulesCmd.Flags().StringP("rules-file", "r", "", "Path to a YAML or JSON file containing the rules to validate")
	validateRulesCmd.Flags().String("delimiter", "", "Input field delimiter (default \",\")")
	validateRulesCmd.Flags().Bool("json", false, "Output the validation status in JSON format")
	validateCmd.AddCommand(validateRulesCmd)

	// rules cmd
	// rules dump cmd
	rulesDumpCmd.Flags().StringP("rules-file", "r", "", "Path to a YAML or JSON file containing the rules to dump")
	rulesCmd.AddCommand(rulesDumpCmd)

	// Flag binding for root cmd
	rootFlagBinding(rootCmd)

	// register subcommands
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(rulesCmd)
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	cmd := Prepare()
	return cmd.Execute()
}

func withSignalWatcher(fn func(ctx context.Context, cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) error {
	return func(cmd *cobra.Command, args []string) error {
		ctx, cancel := signal.NotifyContext(context.Background(),
			syscall.SIGHUP,
			syscall.SIGINT,
			syscall.SIGTERM,
			syscall.SIGQUIT)
		defer cancel()
		return fn(ctx, cmd, args)
	}
}

func withProfiling(fn func(cmd *cobra.Command, args []string) error) func(cmd *cobra.Command, args []string) (err error) {
	return func(cmd *cobra.Command, args []string) (err error) {
		if cmd.Flags().Lookup("profile").Value.String() != trueStr {
			return fn(cmd, args)
		}

		stopProfiling, err := profiling.Start("cpu.prof", "mem.prof")
		if err != nil {
			return err
		}
		defer func() {
			if stopErr := stopProfiling(); stopErr != nil {
				fmt.Fprintf(os.Stderr, "writing profiles: %v\n", stopErr)
			}
		}()

		return fn(cmd, args)
	}
}

func rootFlagBinding(cmd *cobra.Command) {
	viper.BindPFlag("config", cmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag(config.LogLevelEnv, cmd.PersistentFlags().Lookup("log-level"))
}

func version() string {
	if Env != "" {
		return Env + " (" + otel.Version() + ")"
	}
	return otel.Version()
}

func newInstrumentationProvider(ctx context.Context) (otel.InstrumentationProvider, error) {
	cfg, err := config.ParseInstrumentationConfig()
	if err != nil {
		return nil, fmt.Errorf("parsing instrumentation config: %w", err)
	}

	p, err := otel.NewInstrumentationProvider(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("initialisating instrumentation provider: %w", err)
	}
	return p, nil
}
