// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/xataio/csvsanity/cmd/config"
	"github.com/xataio/csvsanity/pkg/sanitizer"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the csvsanity configuration",
}

var errInvalidRules = errors.New("rules validation failed")

var validateRulesCmd = &cobra.Command{
	Use:     "rules [INPUT_FILE...]",
	Short:   "Validates the rules and checks the fields they reference are part of the input files headers",
	PreRunE: validateRulesFlagBinding,
	RunE: withSignalWatcher(func(ctx context.Context, cmd *cobra.Command, args []string) error {
		sp, _ := pterm.DefaultSpinner.WithText("validating csvsanity rules...").Start()

		err := func() error {
			sanitizerConfig, err := config.ParseSanitizerConfig()
			if err != nil {
				return fmt.Errorf("parsing sanitizer config: %w", err)
			}

			inputs := args
			if len(inputs) == 0 && sanitizerConfig.Input.Path != "" {
				inputs = []string{sanitizerConfig.Input.Path}
			}

			rulesStatus, err := sanitizer.Validate(ctx, sanitizerConfig, inputs...)
			if err != nil {
				return err
			}

			statusErrs := rulesStatus.GetErrors()
			if len(statusErrs) == 0 {
				sp.Success("rules are valid")
			} else {
				sp.Warning("csvsanity validation check identified issues with ", strings.Join(statusErrs.Keys(), ", "))
			}

			if err := print(cmd, rulesStatus); err != nil {
				return fmt.Errorf("failed to format csvsanity validation status: %w", err)
			}

			if !rulesStatus.Valid {
				return errInvalidRules
			}
			return nil
		}()
		if err != nil && !errors.Is(err, errInvalidRules) {
			sp.Fail(err.Error())
		}

		return err
	}),
	Example: `
	csvsanity validate rules -r rules.yaml customers.csv
	csvsanity validate rules -c config.yaml
	csvsanity validate rules -c config.env --json customers.csv orders.csv
	`,
}

func validateRulesFlagBinding(cmd *cobra.Command, _ []string) error {
	// to be able to overwrite configuration with flags when yaml config file is
	// provided
	viper.BindPFlag("input.delimiter", cmd.Flags().Lookup("delimiter"))

	// to be able to overwrite configuration with flags when env config file is
	// provided or when no configuration is provided
	viper.BindPFlag("CSVSANITY_INPUT_DELIMITER", cmd.Flags().Lookup("delimiter"))

	rulesFileFlagBinding(cmd)
	return nil
}
