// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xataio/csvsanity/cmd/config"
	"github.com/xataio/csvsanity/pkg/ruleset"
	"github.com/xataio/csvsanity/pkg/transformers/builder"
)

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the csvsanity rules",
}

var rulesDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Dump prints the rules in the order they are applied, default rules included",
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		rulesFileFlagBinding(cmd)
		return nil
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		rulesConfig, err := config.ParseRulesConfig()
		if err != nil {
			return fmt.Errorf("parsing rules config: %w", err)
		}

		rules, err := ruleset.NewRulesetFromConfig(rulesConfig, builder.NewTransformerBuilder())
		if err != nil {
			return fmt.Errorf("building ruleset: %w", err)
		}

		return rules.Dump(cmd.OutOrStdout())
	},
	Example: `
	csvsanity rules dump -r rules.yaml
	csvsanity rules dump -c config.yaml`,
}
