// SPDX-License-Identifier: MIT

package units

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"
)

// System is the table-driven Adapter implementation.
// It is safe for concurrent use: the registry is read-only after
// construction and the parse cache is guarded by an RWMutex.
type System struct {
	reg    *registry
	logger *slog.Logger

	mu        sync.RWMutex
	cache     map[string]*Composite
	cacheSize int

	none *Composite // shared dimensionless descriptor
	rad  *Composite
	deg  *Composite
}

// Compile-time assertion.
var _ Adapter = (*System)(nil)

var (
	defaultOnce   sync.Once
	defaultSystem *System
)

// Default returns the process-wide System built from the embedded table.
func Default() *System {
	defaultOnce.Do(func() { defaultSystem = MustNewSystem() })

	return defaultSystem
}

// NewSystem builds a System from the embedded table (unless disabled) and
// any user tables, in order.
//
// Errors:
//   - ErrTable for malformed tables; I/O errors from WithTableFile.
func NewSystem(opts ...Option) (*System, error) {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	s := &System{
		reg:       newRegistry(),
		logger:    o.logger,
		cache:     map[string]*Composite{},
		cacheSize: o.cacheSize,
	}
	if o.builtin {
		if err := s.load(bytes.NewReader(defaultTable), "builtin"); err != nil {
			return nil, err
		}
	}
	for _, open := range o.tables {
		r, label, err := open()
		if err != nil {
			return nil, fmt.Errorf("units: open table %s: %w", label, err)
		}
		if err := s.load(r, label); err != nil {
			return nil, err
		}
	}
	s.none = dimensionless()
	// rad and deg are optional: a user-only table may not define angles.
	s.rad, _ = s.reg.lookup("rad")
	s.deg, _ = s.reg.lookup("deg")

	return s, nil
}

// MustNewSystem is NewSystem that panics on error.
func MustNewSystem(opts ...Option) *System {
	s, err := NewSystem(opts...)
	if err != nil {
		panic(err)
	}

	return s
}

func (s *System) load(r io.Reader, label string) error {
	tf, err := decodeTable(r)
	if err != nil {
		return fmt.Errorf("table %s: %w", label, err)
	}
	if err := s.reg.apply(tf, normalize); err != nil {
		return fmt.Errorf("table %s: %w", label, err)
	}
	s.logger.Debug("unit table loaded",
		"table", label,
		"dimensions", len(tf.Dimensions),
		"prefixes", len(tf.Prefixes),
		"units", len(tf.Units))

	return nil
}

// normalize folds compatibility characters (µ micro sign, Å angstrom sign,
// full-width letters) and trims surrounding space.
func normalize(spec string) string {
	return strings.TrimSpace(norm.NFKC.String(spec))
}

// Parse canonicalizes a unit expression such as "km / h" or "μm".
// The empty string and "dimensionless" yield the dimensionless unit.
func (s *System) Parse(spec string) (*Composite, error) {
	key := normalize(spec)
	if key == "" || key == "dimensionless" {
		return s.none, nil
	}
	s.mu.RLock()
	c, ok := s.cache[key]
	s.mu.RUnlock()
	if ok {
		return c, nil
	}
	c, err := parseExpression(key, s.reg.lookup)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("unit parsed", "spec", spec, "canonical", c.String(), "scale", c.scale)
	if s.cacheSize > 0 {
		s.mu.Lock()
		if len(s.cache) >= s.cacheSize {
			s.cache = map[string]*Composite{}
		}
		s.cache[key] = c
		s.mu.Unlock()
	}

	return c, nil
}

// MustParse is Parse that panics on error; intended for tests and tables of
// constants.
func (s *System) MustParse(spec string) *Composite {
	c, err := s.Parse(spec)
	if err != nil {
		panic(err)
	}

	return c
}

// Canonicalize implements Adapter.
// Accepted specs: string, *Composite, any other Unit (re-parsed from its
// String form), nil (dimensionless).
func (s *System) Canonicalize(spec any) (Unit, error) {
	switch v := spec.(type) {
	case nil:
		return s.none, nil
	case string:
		return s.Parse(v)
	case *Composite:
		if v == nil {
			return s.none, nil
		}
		return v, nil
	case Unit:
		return s.Parse(v.String())
	default:
		return nil, fmt.Errorf("%w: %T", ErrUnsupportedSpec, spec)
	}
}

// composite converts a Unit into this System's descriptor.
func (s *System) composite(u Unit) (*Composite, error) {
	if u == nil {
		return s.none, nil
	}
	if c, ok := u.(*Composite); ok && c != nil {
		return c, nil
	}

	return s.Parse(u.String())
}

// Compatible implements Adapter: same dimension, any scale.
func (s *System) Compatible(a, b Unit) bool {
	ca, err := s.composite(a)
	if err != nil {
		return false
	}
	cb, err := s.composite(b)
	if err != nil {
		return false
	}

	return ca.dims.equal(cb.dims)
}

// ConversionFactor implements Adapter.
func (s *System) ConversionFactor(from, to Unit) (float64, error) {
	cf, err := s.composite(from)
	if err != nil {
		return 0, err
	}
	ct, err := s.composite(to)
	if err != nil {
		return 0, err
	}
	if !cf.dims.equal(ct.dims) {
		return 0, fmt.Errorf("%w: %q and %q", ErrIncompatible, cf.String(), ct.String())
	}
	if cf.repr == ct.repr {
		return 1, nil
	}

	return cf.scale / ct.scale, nil
}

// Compose implements Adapter.
func (s *System) Compose(a, b Unit, op Op) (Unit, error) {
	ca, err := s.composite(a)
	if err != nil {
		return nil, err
	}
	cb, err := s.composite(b)
	if err != nil {
		return nil, err
	}
	switch op {
	case Mul:
		return ca.mul(cb, whole(1)), nil
	case Div:
		return ca.mul(cb, whole(-1)), nil
	default:
		return nil, fmt.Errorf("%w: op %d", ErrSyntax, op)
	}
}

// Power implements Adapter. Dimensional units need a rational exponent
// (denominator up to 64); a plain dimensionless unit accepts any power.
func (s *System) Power(u Unit, p float64) (Unit, error) {
	c, err := s.composite(u)
	if err != nil {
		return nil, err
	}
	if len(c.terms) == 0 && c.factor == 1 {
		return c, nil
	}
	e, ok := ExpFromFloat(p)
	if !ok {
		return nil, fmt.Errorf("%w: %q ** %g", ErrExponent, c.String(), p)
	}

	return c.pow(e), nil
}

// IsAngle implements Adapter.
func (s *System) IsAngle(u Unit) bool {
	c, err := s.composite(u)
	if err != nil {
		return false
	}

	return len(c.dims) == 1 && c.dims["angle"].norm() == whole(1)
}

// Dimensionless implements Adapter.
func (s *System) Dimensionless() Unit { return s.none }

// Radian returns the radian descriptor, or nil if the tables define none.
func (s *System) Radian() Unit {
	if s.rad == nil {
		return nil
	}
	return s.rad
}

// Degree returns the degree descriptor, or nil if the tables define none.
func (s *System) Degree() Unit {
	if s.deg == nil {
		return nil
	}
	return s.deg
}

// Decompose returns the SI base-unit expression of u's dimension (km / h →
// m / s). The scale is dropped; use ConversionFactor to move values across.
func (s *System) Decompose(u Unit) (Unit, error) {
	c, err := s.composite(u)
	if err != nil {
		return nil, err
	}
	terms := make([]term, 0, len(c.dims))
	for d, e := range c.dims {
		base, ok := baseSymbols[d]
		if !ok {
			base = d
		}
		bc, err := s.reg.lookup(base)
		if err != nil || len(bc.terms) != 1 {
			return nil, fmt.Errorf("%w: no base unit for dimension %q", ErrUnknownUnit, d)
		}
		t := bc.terms[0]
		t.exp = e
		terms = append(terms, t)
	}
	return finish(1, terms), nil
}

// baseSymbols names the SI base unit of each builtin dimension. Dimensions
// missing here (user tables) use the dimension name as the symbol.
var baseSymbols = map[string]string{
	"length":      "m",
	"mass":        "kg",
	"time":        "s",
	"current":     "A",
	"temperature": "K",
	"amount":      "mol",
	"luminosity":  "cd",
	"angle":       "rad",
	"adu":         "adu",
	"electron":    "electron",
	"photon":      "ph",
}
