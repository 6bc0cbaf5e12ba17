// SPDX-License-Identifier: MIT

package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/katalvlaran/skydata/fits"
	"github.com/katalvlaran/skydata/grid"
	"github.com/katalvlaran/skydata/image2d"
	"github.com/katalvlaran/skydata/index"
	"github.com/katalvlaran/skydata/interp"
)

func newResampleCmd(a *app) *cobra.Command {
	var (
		points   int
		typeName string
		from, to float64
		name     string
		strict   bool
	)

	cmd := &cobra.Command{
		Use:   "resample FILE OUT",
		Short: "Sample a table onto a regular grid and write a FITS image",
		Long: `Interpolates an (ordinate, value) table at --points evenly spaced ordinates
and writes them as a 1-row FITS image extension with a linear WCS (CRVAL1,
CRPIX1, CDELT1). OUT ending in .gz is gzip compressed. Grid points outside
the table range are written as blanks.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if points < 2 {
				return fmt.Errorf("--points %d: need at least 2", points)
			}
			dt, err := a.cfg.DataType()
			if cmd.Flags().Changed("type") {
				dt, err = fits.ParseDataType(typeName)
			}
			if err != nil {
				return err
			}

			s, err := interp.Load(args[0], a.interpOptions(cmd, strict)...)
			if err != nil {
				return err
			}
			lo, hi := s.Range()
			if cmd.Flags().Changed("from") {
				lo = from
			}
			if cmd.Flags().Changed("to") {
				hi = to
			}

			g, err := grid.New([]float64{lo}, []float64{0}, []float64{(hi - lo) / float64(points-1)})
			if err != nil {
				return fmt.Errorf("grid [%g, %g]: %w", lo, hi, err)
			}
			img, err := sample(s, g, points, hi)
			if err != nil {
				return err
			}
			if name == "" {
				name = baseName(args[0])
			}
			img.SetName(name)
			if err = img.SetPrecision(a.cfg.Export.Precision); err != nil {
				return err
			}

			hdus, err := img.CreateHDUs(dt)
			if err != nil {
				return err
			}
			for _, h := range hdus {
				if err = setLinearWCS(h, g); err != nil {
					return err
				}
			}
			if err = fits.WriteFile(args[1], hdus...); err != nil {
				return err
			}
			a.log.Info("wrote image",
				zap.String("path", args[1]), zap.Int("points", points),
				zap.Stringer("type", dt), zap.Int("valid", img.ValidCount()))

			return nil
		},
	}
	cmd.Flags().IntVar(&points, "points", 100, "number of grid points")
	cmd.Flags().StringVar(&typeName, "type", "", "FITS storage class (overrides export.data_type)")
	cmd.Flags().Float64Var(&from, "from", 0, "first grid ordinate (default: table start)")
	cmd.Flags().Float64Var(&to, "to", 0, "last grid ordinate (default: table end)")
	cmd.Flags().StringVar(&name, "name", "", "EXTNAME (default: input file name)")
	cmd.Flags().BoolVar(&strict, "strict", false, "abort on malformed lines (overrides interp.strict)")

	return cmd
}

// sample evaluates s at every grid point of a points×1 image. The last point
// is pinned to last against rounding. Points outside the table range are
// left invalid.
func sample(s *interp.Simple, g *grid.Grid, points int, last float64) (*image2d.Image, error) {
	img, err := image2d.New(points, 1)
	if err != nil {
		return nil, err
	}
	for i := 0; i < points; i++ {
		x, err := g.ValueAt(index.Of(i))
		if err != nil {
			return nil, err
		}
		if i == points-1 {
			x[0] = last
		}
		y, err := s.Value(x[0])
		switch {
		case errors.Is(err, interp.ErrOutOfRange):
			err = img.Discard(i, 0)
		case err == nil:
			err = img.Set(i, 0, y)
		}
		if err != nil {
			return nil, err
		}
	}

	return img, nil
}

// setLinearWCS records the grid as FITS axis-1 keywords (CRPIX is 1-based).
func setLinearWCS(h *fits.HDU, g *grid.Grid) error {
	if err := h.Header.Set("CRPIX1", g.ReferenceIndex()[0]+1, "reference pixel"); err != nil {
		return err
	}
	if err := h.Header.Set("CRVAL1", g.Reference()[0], "ordinate at reference pixel"); err != nil {
		return err
	}

	return h.Header.Set("CDELT1", g.Resolution()[0], "ordinate step")
}

func baseName(path string) string {
	b := filepath.Base(path)
	b = strings.TrimSuffix(b, ".gz")

	return strings.TrimSuffix(b, filepath.Ext(b))
}
