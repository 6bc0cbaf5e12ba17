// SPDX-License-Identifier: MIT

package fits_test

import (
	"encoding/binary"
	"errors"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/katalvlaran/skydata/fits"
	"github.com/klauspost/compress/gzip"
	"github.com/stretchr/testify/require"
)

func TestParseDataType(t *testing.T) {
	t.Parallel()

	cases := map[string]fits.DataType{
		"float32": fits.Float32, "FLOAT64": fits.Float64, "-32": fits.Float32,
		"16": fits.Int16, "byte": fits.Uint8, " int64 ": fits.Int64, "double": fits.Float64,
	}
	for in, want := range cases {
		got, err := fits.ParseDataType(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
	for _, bad := range []string{"", "complex", "12", "-16"} {
		_, err := fits.ParseDataType(bad)
		require.ErrorIs(t, err, fits.ErrBadDataType, bad)
	}
	require.Equal(t, 4, fits.Float32.Size())
	require.Equal(t, 2, fits.Int16.Size())
	require.Equal(t, "DataType(7)", fits.DataType(7).String())
}

func TestCard_Format(t *testing.T) {
	t.Parallel()

	cases := []struct {
		card fits.Card
		want string
	}{
		{fits.Card{Key: "SIMPLE", Value: true}, "SIMPLE  =                    T"},
		{fits.Card{Key: "NAXIS1", Value: 640}, "NAXIS1  =                  640"},
		{fits.Card{Key: "EXPTIME", Value: 2.0, Comment: "s"}, "EXPTIME =                  2.0 / s"},
		{fits.Card{Key: "BIG", Value: 1e20}, "BIG     =                1E+20"},
		{fits.Card{Key: "XTENSION", Value: "IMAGE"}, "XTENSION= 'IMAGE   '"},
		{fits.Card{Key: "OBJECT", Value: "O'Neil's"}, "OBJECT  = 'O''Neil''s'"},
		{fits.Card{Key: "COMMENT", Comment: "free text"}, "COMMENT   free text"},
	}
	for _, tc := range cases {
		got, err := tc.card.Format()
		require.NoError(t, err)
		require.Len(t, got, 80)
		require.Equal(t, tc.want, strings.TrimRight(got, " "))
	}

	long, err := fits.Card{Key: "NOTE", Value: "x", Comment: strings.Repeat("c", 100)}.Format()
	require.NoError(t, err)
	require.Len(t, long, 80)

	_, err = fits.Card{Key: "NOTE", Value: strings.Repeat("v", 90)}.Format()
	require.ErrorIs(t, err, fits.ErrCardTooLong)
	_, err = fits.Card{Key: "NOTE", Value: []int{1}}.Format()
	require.ErrorIs(t, err, fits.ErrBadValue)
	_, err = fits.Card{Key: "NOTE", Value: math.NaN()}.Format()
	require.ErrorIs(t, err, fits.ErrBadValue)
}

func TestHeader_Set(t *testing.T) {
	t.Parallel()

	var h fits.Header
	require.NoError(t, h.Set("bunit", "Jy/beam", ""))
	require.NoError(t, h.Set("BUNIT", "K", "replaced"))
	require.NoError(t, h.AddHistory("one"))
	require.NoError(t, h.AddHistory("two"))
	require.Equal(t, 3, h.Len())
	v, ok := h.Get("bunit")
	require.True(t, ok)
	require.Equal(t, "K", v)

	require.ErrorIs(t, h.Set("NAXIS2", 3, ""), fits.ErrReservedKeyword)
	require.ErrorIs(t, h.Set("BITPIX", 8, ""), fits.ErrReservedKeyword)
	require.ErrorIs(t, h.Set("TOOLONGKEY", 1, ""), fits.ErrBadKeyword)
	require.ErrorIs(t, h.Set("BAD KEY", 1, ""), fits.ErrBadKeyword)
	require.ErrorIs(t, h.Set("OK", struct{}{}, ""), fits.ErrBadValue)
	require.Equal(t, 3, h.Len())
}

func TestNewImageHDU_Errors(t *testing.T) {
	t.Parallel()

	_, err := fits.NewImageHDU(fits.DataType(3), []int{1}, []float64{0})
	require.ErrorIs(t, err, fits.ErrBadDataType)
	_, err = fits.NewImageHDU(fits.Float32, nil, nil)
	require.ErrorIs(t, err, fits.ErrBadAxes)
	_, err = fits.NewImageHDU(fits.Float32, []int{2, 0}, nil)
	require.ErrorIs(t, err, fits.ErrBadAxes)
	_, err = fits.NewImageHDU(fits.Float32, []int{2, 2}, []float64{1, 2, 3})
	require.ErrorIs(t, err, fits.ErrDataLength)
	_, err = fits.NewImageHDU(fits.Float32, []int{math.MaxInt/2 + 1, 2}, nil)
	require.ErrorIs(t, err, fits.ErrBadAxes)

	// 40000 does not fit int16; offset 4 in a 3-wide image is (x=1, y=1).
	_, err = fits.NewImageHDU(fits.Int16, []int{3, 2}, []float64{0, 1, 2, 3, 40000, 5})
	require.ErrorIs(t, err, fits.ErrNotRepresentable)
	var ce *fits.ConversionError
	require.True(t, errors.As(err, &ce))
	require.Equal(t, []int{1, 1}, ce.Position)
	require.Equal(t, fits.Int16, ce.Type)
	require.Contains(t, ce.Error(), "(1,1)")

	_, err = fits.NewImageHDU(fits.Float32, []int{1}, []float64{math.Inf(1)})
	require.ErrorIs(t, err, fits.ErrNotRepresentable)
	_, err = fits.NewImageHDU(fits.Uint8, []int{1}, []float64{255})
	require.ErrorIs(t, err, fits.ErrNotRepresentable) // 255 is BLANK
}

// headerCards splits one header section into trimmed card strings up to END.
func headerCards(t *testing.T, b []byte) []string {
	t.Helper()
	var out []string
	for off := 0; off+80 <= len(b); off += 80 {
		c := strings.TrimRight(string(b[off:off+80]), " ")
		out = append(out, c)
		if c == "END" {
			return out
		}
	}
	t.Fatal("no END card")

	return nil
}

func TestEncode_Float32Extension(t *testing.T) {
	t.Parallel()

	data := []float64{1, 2.5, math.NaN(), -4, 5, 6}
	hdu, err := fits.NewImageHDU(fits.Float32, []int{3, 2}, data)
	require.NoError(t, err)
	require.NoError(t, hdu.Header.Set("BUNIT", "Jy", ""))

	b, err := fits.Encode(hdu)
	require.NoError(t, err)
	require.Len(t, b, 3*2880) // empty primary, extension header, one data block

	primary := headerCards(t, b[:2880])
	require.Equal(t, "SIMPLE  =                    T / conforms to FITS standard", primary[0])
	require.Contains(t, primary, "NAXIS   =                    0")

	ext := headerCards(t, b[2880:5760])
	require.True(t, strings.HasPrefix(ext[0], "XTENSION= 'IMAGE   '"))
	require.Contains(t, ext, "NAXIS1  =                    3")
	require.Contains(t, ext, "NAXIS2  =                    2")
	require.Contains(t, ext, "PCOUNT  =                    0")
	require.Contains(t, ext, "BUNIT   = 'Jy      '")

	body := b[5760:]
	for i, want := range data {
		got := math.Float32frombits(binary.BigEndian.Uint32(body[4*i:]))
		if math.IsNaN(want) {
			require.True(t, math.IsNaN(float64(got)))
			continue
		}
		require.Equal(t, float32(want), got)
	}
	for _, pad := range body[4*len(data):] {
		require.Zero(t, pad)
	}
}

func TestEncode_IntegerBlankAndRounding(t *testing.T) {
	t.Parallel()

	hdu, err := fits.NewImageHDU(fits.Int16, []int{3}, []float64{1.5, math.NaN(), -2.5})
	require.NoError(t, err)
	b, err := fits.Encode(hdu.AsPrimary())
	require.NoError(t, err)
	require.Len(t, b, 2*2880)

	cards := headerCards(t, b[:2880])
	require.Contains(t, cards, "BLANK   =               -32768 / invalid cell marker")
	require.Contains(t, cards, "EXTEND  =                    T")

	body := b[2880:]
	got := []int16{
		int16(binary.BigEndian.Uint16(body[0:])),
		int16(binary.BigEndian.Uint16(body[2:])),
		int16(binary.BigEndian.Uint16(body[4:])),
	}
	require.Equal(t, []int16{2, math.MinInt16, -3}, got)
}

func TestWrite_Structure(t *testing.T) {
	t.Parallel()

	a, err := fits.NewImageHDU(fits.Float64, []int{1}, []float64{1})
	require.NoError(t, err)
	b, err := fits.NewImageHDU(fits.Float64, []int{1}, []float64{2})
	require.NoError(t, err)

	_, err = fits.Write(io.Discard)
	require.ErrorIs(t, err, fits.ErrBadStructure)
	_, err = fits.Write(io.Discard, a, nil)
	require.ErrorIs(t, err, fits.ErrBadStructure)
	_, err = fits.Write(io.Discard, a, b.AsPrimary())
	require.ErrorIs(t, err, fits.ErrBadStructure)

	c, err := fits.NewImageHDU(fits.Float64, []int{1}, []float64{3})
	require.NoError(t, err)
	n, err := fits.Write(io.Discard, a.AsPrimary(), c)
	require.NoError(t, err)
	require.EqualValues(t, 4*2880, n)
}

func TestWriteFile_Gzip(t *testing.T) {
	t.Parallel()

	hdu, err := fits.NewImageHDU(fits.Float32, []int{4, 4}, make([]float64, 16))
	require.NoError(t, err)
	dir := t.TempDir()

	plain := filepath.Join(dir, "img.fits")
	require.NoError(t, fits.WriteFile(plain, hdu))
	raw, err := os.ReadFile(plain)
	require.NoError(t, err)
	require.Zero(t, len(raw)%2880)

	packed := filepath.Join(dir, "img.fits.gz")
	require.NoError(t, fits.WriteFile(packed, hdu))
	f, err := os.Open(packed)
	require.NoError(t, err)
	defer f.Close()
	zr, err := gzip.NewReader(f)
	require.NoError(t, err)
	unpacked, err := io.ReadAll(zr)
	require.NoError(t, err)
	require.Equal(t, raw, unpacked)

	bad := filepath.Join(dir, "bad.fits")
	require.ErrorIs(t, fits.WriteFile(bad), fits.ErrBadStructure)
	_, err = os.Stat(bad)
	require.True(t, os.IsNotExist(err))
}

func TestNewImageHDU_InfinityInFloatClasses(t *testing.T) {
	t.Parallel()

	for _, dt := range []fits.DataType{fits.Float32, fits.Float64} {
		_, err := fits.NewImageHDU(dt, []int{2}, []float64{math.Inf(1), math.Inf(-1)})
		require.NoError(t, err, dt.String())
	}
	hdu, err := fits.NewImageHDU(fits.Float32, []int{2}, []float64{math.Inf(1), math.Inf(-1)})
	require.NoError(t, err)
	b, err := fits.Encode(hdu)
	require.NoError(t, err)
	require.True(t, math.IsInf(float64(math.Float32frombits(binary.BigEndian.Uint32(b[5760:]))), 1))
	require.True(t, math.IsInf(float64(math.Float32frombits(binary.BigEndian.Uint32(b[5764:]))), -1))

	_, err = fits.NewImageHDU(fits.Float32, []int{1}, []float64{1e39})
	require.ErrorIs(t, err, fits.ErrNotRepresentable)
	_, err = fits.NewImageHDU(fits.Int16, []int{1}, []float64{math.Inf(1)})
	require.ErrorIs(t, err, fits.ErrNotRepresentable)
}
