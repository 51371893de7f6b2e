// SPDX-License-Identifier: MIT
// Package: units
//
// Purpose:
//   - Load unit tables from YAML (embedded default + optional user tables).
//   - Build the symbol registry used by the parser: exact symbols, aliases,
//     names, and prefix+symbol combinations for prefixable units.
//
// Notes:
//   - Tables are applied in order; a later table may define units in terms of
//     earlier ones but may not redefine an existing symbol.

package units

import (
	_ "embed"
	"fmt"
	"io"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed data/units.yaml
var defaultTable []byte

// tableFile is the YAML document layout.
type tableFile struct {
	Dimensions []string    `yaml:"dimensions"`
	Prefixes   []prefixDef `yaml:"prefixes"`
	Units      []unitDef   `yaml:"units"`
}

type prefixDef struct {
	Symbol  string   `yaml:"symbol"`
	Factor  float64  `yaml:"factor"`
	Aliases []string `yaml:"aliases,omitempty"`
}

type unitDef struct {
	Symbol     string         `yaml:"symbol"`
	Name       string         `yaml:"name,omitempty"`
	Aliases    []string       `yaml:"aliases,omitempty"`
	Scale      float64        `yaml:"scale,omitempty"`
	Dims       map[string]int `yaml:"dims,omitempty"`
	Define     string         `yaml:"define,omitempty"`
	Prefixable bool           `yaml:"prefixable,omitempty"`
}

// entry is a resolved table unit.
type entry struct {
	symbol     string
	scale      float64
	dims       dimVec
	prefixable bool
}

// prefix is a resolved SI prefix.
type prefix struct {
	symbol string
	factor float64
}

// registry holds everything the parser needs to resolve symbols.
type registry struct {
	dimensions map[string]bool
	exact      map[string]*entry // symbols, aliases and names
	prefixes   map[string]prefix // prefix spellings (symbol and aliases)
	order      []string          // prefix spellings, longest first
}

func newRegistry() *registry {
	return &registry{
		dimensions: map[string]bool{},
		exact:      map[string]*entry{},
		prefixes:   map[string]prefix{},
	}
}

// decodeTable parses one YAML table document.
func decodeTable(r io.Reader) (*tableFile, error) {
	var tf tableFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&tf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrTable, err)
	}

	return &tf, nil
}

// apply merges a decoded table into the registry.
func (r *registry) apply(tf *tableFile, normalize func(string) string) error {
	for _, d := range tf.Dimensions {
		r.dimensions[d] = true
	}
	for _, p := range tf.Prefixes {
		if p.Symbol == "" || p.Factor <= 0 {
			return fmt.Errorf("%w: prefix %q", ErrTable, p.Symbol)
		}
		for _, s := range append([]string{p.Symbol}, p.Aliases...) {
			r.prefixes[normalize(s)] = prefix{symbol: p.Symbol, factor: p.Factor}
		}
	}
	r.order = r.order[:0]
	for s := range r.prefixes {
		r.order = append(r.order, s)
	}
	sort.Slice(r.order, func(i, j int) bool {
		if len(r.order[i]) != len(r.order[j]) {
			return len(r.order[i]) > len(r.order[j])
		}
		return r.order[i] < r.order[j]
	})

	for _, u := range tf.Units {
		e, err := r.build(u)
		if err != nil {
			return err
		}
		spellings := append([]string{u.Symbol}, u.Aliases...)
		if u.Name != "" && u.Name != u.Symbol {
			spellings = append(spellings, u.Name)
		}
		for _, s := range spellings {
			key := normalize(s)
			if _, dup := r.exact[key]; dup {
				return fmt.Errorf("%w: duplicate symbol %q", ErrTable, s)
			}
			r.exact[key] = e
		}
	}

	return nil
}

// build resolves a unit definition into an entry.
func (r *registry) build(u unitDef) (*entry, error) {
	if u.Symbol == "" {
		return nil, fmt.Errorf("%w: unit without symbol", ErrTable)
	}
	scale := u.Scale
	if scale == 0 {
		scale = 1
	}
	if scale < 0 {
		return nil, fmt.Errorf("%w: negative scale for %q", ErrTable, u.Symbol)
	}
	e := &entry{symbol: u.Symbol, scale: scale, dims: dimVec{}, prefixable: u.Prefixable}
	switch {
	case u.Define != "" && len(u.Dims) > 0:
		return nil, fmt.Errorf("%w: %q sets both dims and define", ErrTable, u.Symbol)
	case u.Define != "":
		c, err := parseExpression(u.Define, r.lookup)
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrTable, u.Symbol, err)
		}
		e.scale *= c.scale
		e.dims = c.dims
	default:
		for d, n := range u.Dims {
			if !r.dimensions[d] {
				return nil, fmt.Errorf("%w: %q uses unknown dimension %q", ErrTable, u.Symbol, d)
			}
			if n != 0 {
				e.dims[d] = whole(n)
			}
		}
	}

	return e, nil
}

// lookup resolves a symbol: exact spelling first, then prefix + prefixable unit.
func (r *registry) lookup(symbol string) (*Composite, error) {
	if e, ok := r.exact[symbol]; ok {
		return finish(1, []term{{symbol: e.symbol, exp: whole(1), scale: e.scale, dims: e.dims}}), nil
	}
	for _, ps := range r.order {
		if len(symbol) <= len(ps) || symbol[:len(ps)] != ps {
			continue
		}
		e, ok := r.exact[symbol[len(ps):]]
		if !ok || !e.prefixable {
			continue
		}
		p := r.prefixes[ps]
		return finish(1, []term{{
			symbol: p.symbol + e.symbol,
			exp:    whole(1),
			scale:  p.factor * e.scale,
			dims:   e.dims,
		}}), nil
	}

	return nil, fmt.Errorf("%w: %q", ErrUnknownUnit, symbol)
}
