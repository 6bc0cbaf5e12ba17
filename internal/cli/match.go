// SPDX-License-Identifier: MIT

package cli

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/skydata/interp"
	"github.com/katalvlaran/skydata/locality"
)

// source is one catalog entry keyed by sky position.
type source = locality.Data[locality.SkyPosition, float64]

// matchedSource is one match result row.
type matchedSource struct {
	RA           float64 `yaml:"ra"`
	Dec          float64 `yaml:"dec"`
	Value        float64 `yaml:"value"`
	Measurements int     `yaml:"measurements"`
}

const arcsec = math.Pi / (180 * 3600)

func newMatchCmd(a *app) *cobra.Command {
	var radius float64

	cmd := &cobra.Command{
		Use:   "match CATALOG...",
		Short: "Coadd source catalogs by sky position",
		Long: `Each catalog line holds "ra dec value" in degrees. Sources within --radius
arc seconds of an earlier source are averaged into it, weighted by how many
measurements each side already holds. Prints the merged catalog as YAML,
sorted by declination then right ascension.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("radius") {
				radius = a.cfg.Match.RadiusArcsec
			}
			var merged []*source
			for _, path := range args {
				recs, err := loadCatalog(path)
				if err != nil {
					return err
				}
				before := len(merged)
				merged, err = locality.Coadd(merged, recs, radius*arcsec, nil)
				if err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
				a.log.Debug("coadded catalog", zap.String("path", path),
					zap.Int("sources", len(recs)), zap.Int("new", len(merged)-before))
			}
			locality.Sort(merged)

			out := make([]matchedSource, len(merged))
			for i, m := range merged {
				loc := m.Locality()
				out[i] = matchedSource{
					RA:           loc.RA / math.Pi * 180,
					Dec:          loc.Dec / math.Pi * 180,
					Value:        m.Value,
					Measurements: m.Measurements(),
				}
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(out); err != nil {
				return err
			}

			return enc.Close()
		},
	}
	cmd.Flags().Float64Var(&radius, "radius", 1, "match radius in arc seconds (overrides match.radius_arcsec)")

	return cmd
}

func loadCatalog(path string) ([]*source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	recs, err := readCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return recs, nil
}

// readCatalog parses "ra dec value" lines; '#' starts a comment. NaN and
// infinite numbers are rejected.
func readCatalog(r io.Reader) ([]*source, error) {
	var out []*source
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := sc.Text()
		body := text
		if i := strings.IndexByte(body, '#'); i >= 0 {
			body = body[:i]
		}
		fields := strings.Fields(body)
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 3 {
			return nil, &interp.LineError{Line: line, Text: text, Err: interp.ErrMissingColumn}
		}
		var nums [3]float64
		for i := range nums {
			v, err := cast.ToFloat64E(fields[i])
			if err != nil {
				return nil, &interp.LineError{Line: line, Text: text, Err: err}
			}
			if math.IsNaN(v) || math.IsInf(v, 0) {
				return nil, &interp.LineError{Line: line, Text: text, Err: interp.ErrNonFinite}
			}
			nums[i] = v
		}
		pos := locality.SkyPositionDeg(nums[0], nums[1])
		out = append(out, locality.New(pos, nums[2], locality.Blender[float64](locality.WeightedMean)))
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}

	return out, nil
}
