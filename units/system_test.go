// SPDX-License-Identifier: MIT

package units_test

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/katalvlaran/qfloat/units"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_CanonicalSpelling(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	cases := map[string]string{
		"km / h":           "km / h",
		"kg m2 / s2":       "kg m2 / s2",
		"kg*m^2*s**-2":     "kg m2 / s2",
		"m s-1":            "m / s",
		"1 / s":            "1 / s",
		"s-1":              "1 / s",
		"W / (m2 Hz)":      "W / (Hz m2)",
		"erg / s cm2":      "erg / (cm2 s)",
		"m(1/2)":           "m(1/2)",
		"m^(1/2) m^(1/2)":  "m",
		"0.001 m":          "0.001 m",
		"m / m":            "",
		"":                 "",
		"dimensionless":    "",
		"  adu  ":          "adu",
		"electron / s":     "electron / s",
		"deg":              "deg",
		"°":                "deg",
		"Angstrom":         "Angstrom",
		"metre":            "m",
	}
	for in, want := range cases {
		c, err := sys.Parse(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, c.String(), "parse %q", in)
	}
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	_, err := sys.Parse("furlong")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
	_, err = sys.Parse("m / (s")
	assert.ErrorIs(t, err, units.ErrSyntax)
	_, err = sys.Parse("m ^")
	assert.ErrorIs(t, err, units.ErrSyntax)
	_, err = sys.Parse("m$")
	assert.ErrorIs(t, err, units.ErrSyntax)
	_, err = sys.Parse("m^0.1234567")
	assert.ErrorIs(t, err, units.ErrExponent)
	// "k" alone is a prefix, not a unit.
	_, err = sys.Parse("k")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
}

func TestParse_NFKCMicro(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	micro, err := sys.Parse("µm") // MICRO SIGN
	require.NoError(t, err)
	mu, err := sys.Parse("μm") // GREEK SMALL LETTER MU
	require.NoError(t, err)
	ascii, err := sys.Parse("um")
	require.NoError(t, err)

	assert.Equal(t, ascii.String(), micro.String())
	assert.Equal(t, ascii.String(), mu.String())
	k, err := sys.ConversionFactor(micro, ascii)
	require.NoError(t, err)
	assert.Equal(t, 1.0, k)

	ang, err := sys.Parse("Å") // ANGSTROM SIGN folds to Å
	require.NoError(t, err)
	assert.Equal(t, "Angstrom", ang.String())
}

func TestConversionFactor(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	cases := []struct {
		from, to string
		want     float64
	}{
		{"km", "m", 1000},
		{"cm", "m", 0.01},
		{"km / h", "m / s", 1.0 / 3.6},
		{"h", "s", 3600},
		{"deg", "rad", 0.017453292519943295},
		{"arcsec", "deg", 1.0 / 3600},
		{"J", "erg", 1e7},
		{"Jy", "W / (m2 Hz)", 1e-26},
		{"percent", "", 0.01},
		{"m / km", "", 0.001},
		{"N", "kg m / s2", 1},
		{"pc", "AU", 206264.80624709636},
	}
	for _, tc := range cases {
		from, err := sys.Parse(tc.from)
		require.NoError(t, err)
		to, err := sys.Parse(tc.to)
		require.NoError(t, err)
		k, err := sys.ConversionFactor(from, to)
		require.NoError(t, err, "%s -> %s", tc.from, tc.to)
		assert.InEpsilon(t, tc.want, k, 1e-9, "%s -> %s", tc.from, tc.to)
	}

	_, err := sys.ConversionFactor(sys.MustParse("m"), sys.MustParse("s"))
	assert.ErrorIs(t, err, units.ErrIncompatible)
	// angles are not plain numbers
	_, err = sys.ConversionFactor(sys.MustParse("rad"), sys.Dimensionless())
	assert.ErrorIs(t, err, units.ErrIncompatible)
}

func TestConversionFactor_IdenticalIsExact(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	k, err := sys.ConversionFactor(sys.MustParse("km / h"), sys.MustParse("km h-1"))
	require.NoError(t, err)
	assert.Equal(t, 1.0, k)
}

func TestCompatibleAndAngles(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	assert.True(t, sys.Compatible(sys.MustParse("km"), sys.MustParse("pc")))
	assert.False(t, sys.Compatible(sys.MustParse("km"), sys.MustParse("s")))
	assert.True(t, sys.Compatible(sys.MustParse("%"), sys.Dimensionless()))

	assert.True(t, sys.IsAngle(sys.MustParse("deg")))
	assert.True(t, sys.IsAngle(sys.MustParse("mas")))
	assert.False(t, sys.IsAngle(sys.MustParse("sr")))
	assert.False(t, sys.IsAngle(sys.Dimensionless()))
	assert.Equal(t, "rad", sys.Radian().String())
	assert.Equal(t, "deg", sys.Degree().String())
}

func TestComposeAndPower(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	m, s := sys.MustParse("m"), sys.MustParse("s")

	v, err := sys.Compose(m, s, units.Div)
	require.NoError(t, err)
	assert.Equal(t, "m / s", v.String())

	a, err := sys.Compose(v, s, units.Div)
	require.NoError(t, err)
	assert.Equal(t, "m / s2", a.String())

	one, err := sys.Compose(m, m, units.Div)
	require.NoError(t, err)
	assert.Equal(t, "", one.String())

	sq, err := sys.Power(m, 2)
	require.NoError(t, err)
	assert.Equal(t, "m2", sq.String())

	root, err := sys.Power(sq, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "m", root.String())

	half, err := sys.Power(m, 0.5)
	require.NoError(t, err)
	assert.Equal(t, "m(1/2)", half.String())

	_, err = sys.Power(m, 0.1234567)
	assert.ErrorIs(t, err, units.ErrExponent)

	// any power of a plain number is fine
	d, err := sys.Power(sys.Dimensionless(), 0.1234567)
	require.NoError(t, err)
	assert.Equal(t, "", d.String())
}

func TestCanonicalize(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	u, err := sys.Canonicalize(nil)
	require.NoError(t, err)
	assert.Equal(t, "", u.String())

	u, err = sys.Canonicalize("km")
	require.NoError(t, err)
	assert.Equal(t, "km", u.String())

	again, err := sys.Canonicalize(u)
	require.NoError(t, err)
	assert.Same(t, u, again)

	_, err = sys.Canonicalize(42)
	assert.ErrorIs(t, err, units.ErrUnsupportedSpec)
}

func TestDecompose(t *testing.T) {
	t.Parallel()

	sys := units.Default()
	d, err := sys.Decompose(sys.MustParse("km / h"))
	require.NoError(t, err)
	assert.Equal(t, "m / s", d.String())
	k, err := sys.ConversionFactor(sys.MustParse("km / h"), d)
	require.NoError(t, err)
	assert.InEpsilon(t, 1/3.6, k, 1e-12)

	f, err := sys.Decompose(sys.MustParse("0.001 m / ms"))
	require.NoError(t, err)
	assert.Equal(t, "m / s", f.String())

	n, err := sys.Decompose(sys.MustParse("N"))
	require.NoError(t, err)
	assert.Equal(t, "kg m / s2", n.String())
}

func TestNewSystem_UserTable(t *testing.T) {
	t.Parallel()

	table := []byte(`
units:
  - {symbol: furlong, define: "201.168 m"}
  - {symbol: fortnight, define: "14 d"}
`)
	sys, err := units.NewSystem(units.WithTableData(table))
	require.NoError(t, err)
	fpf, err := sys.Parse("furlong / fortnight")
	require.NoError(t, err)
	k, err := sys.ConversionFactor(fpf, sys.MustParse("m / s"))
	require.NoError(t, err)
	assert.InEpsilon(t, 201.168/(14*86400), k, 1e-12)
}

func TestNewSystem_OnlyUserTable(t *testing.T) {
	t.Parallel()

	table := `
dimensions: [money]
units:
  - {symbol: EUR, dims: {money: 1}}
  - {symbol: ct, define: "0.01 EUR"}
`
	sys, err := units.NewSystem(units.WithoutBuiltinTable(), units.WithTable(strings.NewReader(table)))
	require.NoError(t, err)
	k, err := sys.ConversionFactor(sys.MustParse("ct"), sys.MustParse("EUR"))
	require.NoError(t, err)
	assert.InDelta(t, 0.01, k, 1e-15)

	_, err = sys.Parse("m")
	assert.ErrorIs(t, err, units.ErrUnknownUnit)
	assert.Nil(t, sys.Radian())
}

func TestNewSystem_TableErrors(t *testing.T) {
	t.Parallel()

	cases := map[string]string{
		"yaml":      "units: [",
		"field":     "unitz: []",
		"duplicate": "units:\n  - {symbol: m, dims: {length: 1}}\n",
		"dimension": "units:\n  - {symbol: zz, dims: {colour: 1}}\n",
		"both":      "units:\n  - {symbol: zz, dims: {length: 1}, define: m}\n",
		"define":    "units:\n  - {symbol: zz, define: \"nope\"}\n",
		"prefix":    "prefixes:\n  - {symbol: q, factor: -1}\n",
	}
	for name, table := range cases {
		_, err := units.NewSystem(units.WithTableData([]byte(table)))
		assert.ErrorIs(t, err, units.ErrTable, name)
	}
}

func TestNewSystem_TableFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "extra.yaml")
	require.NoError(t, os.WriteFile(path, []byte("units:\n  - {symbol: league, define: \"4828.032 m\"}\n"), 0o600))

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	sys, err := units.NewSystem(units.WithTableFile(path), units.WithLogger(logger))
	require.NoError(t, err)
	_, err = sys.Parse("league")
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "unit table loaded")
	assert.Contains(t, logs.String(), path)

	_, err = units.NewSystem(units.WithTableFile(filepath.Join(dir, "missing.yaml")))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestOptions_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { units.WithLogger(nil) })
	assert.Panics(t, func() { units.WithTable(nil) })
	assert.Panics(t, func() { units.WithCacheSize(-1) })
}

func TestSystem_ConcurrentParse(t *testing.T) {
	t.Parallel()

	sys, err := units.NewSystem(units.WithCacheSize(4))
	require.NoError(t, err)
	specs := []string{"km / h", "m s-2", "kg m2 / s2", "W / (m2 Hz)", "deg", "um", "Jy", "mas / yr"}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				spec := specs[(g+i)%len(specs)]
				c, err := sys.Parse(spec)
				assert.NoError(t, err)
				assert.NotNil(t, c)
			}
		}(g)
	}
	wg.Wait()
}
