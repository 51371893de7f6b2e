// SPDX-License-Identifier: MIT

// Package units is the unit algebra consumed by qfloat.
//
// The package defines the Adapter interface (what the measurement core needs
// from any unit system) and System, a table-driven implementation:
//
//   - units are products of named symbols raised to rational powers, times an
//     optional numeric factor ("km / h", "kg m2 / s2", "m(1/2)", "0.001 m");
//   - the symbol table (dimensions, SI prefixes, base and derived units) is
//     YAML, embedded by default and extendable with WithTable/WithTableFile;
//   - unit strings are NFKC-normalized, so "µm" (micro sign), "μm" (Greek
//     mu) and "um" are the same unit;
//   - plane angle is a dimension of its own: rad and deg are compatible with
//     each other but not with dimensionless numbers.
//
// Offset units (degree Celsius, Fahrenheit) and logarithmic units
// (magnitudes, dex) are not modelled; every conversion is a pure scale factor.
//
// Quick example:
//
//	sys := units.Default()
//	kmh, _ := sys.Parse("km / h")
//	ms, _ := sys.Parse("m s-1")
//	k, _ := sys.ConversionFactor(kmh, ms) // 0.2777…
package units
