// SPDX-License-Identifier: MIT

package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/skydata/interp"
)

func newInterpolateCmd(a *app) *cobra.Command {
	var at []string
	var strict bool

	cmd := &cobra.Command{
		Use:   "interpolate FILE",
		Short: "Interpolate a two-column table at given ordinates",
		Long: `Reads an (ordinate, value) table, optionally gzip compressed, and prints
"x<TAB>y" for every ordinate passed with --at.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			xs, err := parseFloats("--at", at)
			if err != nil {
				return err
			}
			if len(xs) == 0 {
				return fmt.Errorf("no ordinates given: use --at")
			}
			s, err := interp.Load(args[0], a.interpOptions(cmd, strict)...)
			if err != nil {
				return err
			}
			for _, x := range xs {
				y, err := s.Value(x)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n",
					strconv.FormatFloat(x, 'g', -1, 64), strconv.FormatFloat(y, 'g', -1, 64))
			}

			return nil
		},
	}
	cmd.Flags().StringSliceVar(&at, "at", nil, "ordinates to evaluate (comma separated or repeated)")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort on malformed lines (overrides interp.strict)")

	return cmd
}

// interpOptions resolves table-reading options: the --strict flag wins
// over the configuration when it was given.
func (a *app) interpOptions(cmd *cobra.Command, strict bool) []interp.Option {
	if !cmd.Flags().Changed("strict") {
		strict = a.cfg.Interp.Strict
	}

	return []interp.Option{interp.WithStrict(strict), interp.WithLogger(a.log)}
}

func parseFloats(flag string, in []string) ([]float64, error) {
	out := make([]float64, len(in))
	for i, s := range in {
		v, err := cast.ToFloat64E(s)
		if err != nil {
			return nil, fmt.Errorf("%s %q: %w", flag, s, err)
		}
		out[i] = v
	}

	return out, nil
}
