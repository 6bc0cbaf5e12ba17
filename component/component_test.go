// SPDX-License-Identifier: MIT

package component_test

import (
	"testing"

	"github.com/katalvlaran/skydata/component"
	"github.com/stretchr/testify/require"
)

func TestGuessType(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want component.Type
	}{
		{"signal-to-noise ratio", component.S2N},
		{"Signal to Noise", component.S2N},
		{"flux/noise", component.S2N},
		{"SNR", component.S2N},
		{"RMS noise", component.Noise},
		{"Noise", component.Noise},
		{"flux error", component.Noise},
		{"exposure time", component.Exposure},
		{"Coverage", component.Exposure},
		{"integration TIME", component.Exposure},
		{"weight", component.Weight},
		{"Variance", component.Variance},
		{"flux", component.Signal},
		{"Signal", component.Signal},
		{"banana", component.Unknown},
		{"", component.Unknown},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, component.GuessType(tc.in), "label %q", tc.in)
	}
}

func TestParseTypeAndText(t *testing.T) {
	t.Parallel()

	for typ := component.Unknown; typ <= component.S2N; typ++ {
		got, err := component.ParseType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, got)

		b, err := typ.MarshalText()
		require.NoError(t, err)
		var back component.Type
		require.NoError(t, back.UnmarshalText(b))
		require.Equal(t, typ, back)
	}

	_, err := component.ParseType("banana")
	require.ErrorIs(t, err, component.ErrUnknownType)
	require.Equal(t, "Type(42)", component.Type(42).String())
}
