// SPDX-License-Identifier: MIT

package qfloat

import "github.com/katalvlaran/qfloat/units"

const panicNilSystem = "qfloat: WithSystem: adapter must be non-nil"

// Option configures New.
type Option func(*options)

type options struct {
	uncertainty    any
	uncertaintySet bool
	unit           any
	unitSet        bool
	system         units.Adapter
	systemSet      bool
}

func defaultOptions() options {
	return options{system: units.Default()}
}

// WithUncertainty sets the one-sigma uncertainty: a scalar or an array that
// broadcasts to the nominal's shape. nil means all zeros.
func WithUncertainty(u any) Option {
	return func(o *options) {
		o.uncertainty = u
		o.uncertaintySet = true
	}
}

// WithUnit sets the unit: a string such as "km / h", a units.Unit, or nil
// for dimensionless.
func WithUnit(u any) Option {
	return func(o *options) {
		o.unit = u
		o.unitSet = true
	}
}

// WithSystem selects the unit adapter. Without it New uses the adapter of a
// QFloat nominal, or units.Default().
func WithSystem(a units.Adapter) Option {
	if a == nil {
		panic(panicNilSystem)
	}

	return func(o *options) {
		o.system = a
		o.systemSet = true
	}
}
