// SPDX-License-Identifier: MIT

package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/skydata/component"
)

// classification is one classify result row.
type classification struct {
	Label string `yaml:"label"`
	Type  string `yaml:"type"`
}

func newClassifyCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "classify LABEL...",
		Short: "Guess the component type of column labels",
		Long:  `Prints a YAML list mapping each label to signal, weight, exposure, noise, variance, s2n or unknown.`,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := make([]classification, len(args))
			for i, label := range args {
				out[i] = classification{Label: label, Type: component.GuessType(label).String()}
			}
			a.log.Debug("classified labels", zap.Int("count", len(out)))

			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}

			return enc.Close()
		},
	}
}
