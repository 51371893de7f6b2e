// SPDX-License-Identifier: MIT

package qfloat

import "math"

// supportedUfuncs enumerates every function name the registry must serve.
var supportedUfuncs = []string{
	// trigonometric and hyperbolic
	"sin", "cos", "tan", "sinh", "cosh", "tanh",
	// inverse
	"arcsin", "arccos", "arctan", "arcsinh", "arccosh", "arctanh", "arctan2",
	// exponential and logarithmic
	"exp", "exp2", "expm1", "log", "log2", "log10", "log1p",
	// unit-carrying
	"absolute", "fabs", "negative", "positive",
	"sqrt", "cbrt", "square", "reciprocal", "hypot",
	// angle conversion
	"degrees", "rad2deg", "radians", "deg2rad",
	// arithmetic
	"add", "subtract", "multiply", "divide", "true_divide",
	"power", "floor_divide", "remainder", "mod",
}

var ufuncs = map[string]Handler{}

func init() {
	for _, h := range builtinHandlers() {
		ufuncs[h.Name] = h
	}
	checkRegistry(ufuncs, supportedUfuncs)
}

// unary builds a one-operand handler from f and its derivative.
func unary(name string, in UnitConstraint, out UnitRule, f, df func(float64) float64) Handler {
	k := unaryKernel(f, df)
	return Handler{Name: name, Arity: 1, Input: in, Output: out, Eval: k.eval, Deriv: k.grad}
}

// power builds a unit-raising handler.
func power(name string, p float64, f, df func(float64) float64) Handler {
	h := unary(name, AnyUnit, PowerOutput, f, df)
	h.Exponent = p
	return h
}

// custom builds a handler routed to the arithmetic engine.
func custom(name string, arity int, apply func(args ...any) (QFloat, error)) Handler {
	return Handler{Name: name, Arity: arity, Input: AnyUnit, Output: CustomOutput, Apply: apply}
}

func binary(f func(x, y any) (QFloat, error)) func(args ...any) (QFloat, error) {
	return func(args ...any) (QFloat, error) { return f(args[0], args[1]) }
}

func sign1(x float64) float64 {
	if x < 0 {
		return -1
	}
	return 1
}

func builtinHandlers() []Handler {
	const (
		ln2      = math.Ln2
		ln10     = math.Ln10
		radToDeg = 180 / math.Pi
	)
	id := func(x float64) float64 { return x }
	constant := func(c float64) func(float64) float64 { return func(float64) float64 { return c } }

	hs := []Handler{
		unary("sin", AngleInput, DimensionlessOutput, math.Sin, math.Cos),
		unary("cos", AngleInput, DimensionlessOutput, math.Cos,
			func(x float64) float64 { return -math.Sin(x) }),
		unary("tan", AngleInput, DimensionlessOutput, math.Tan,
			func(x float64) float64 { c := math.Cos(x); return 1 / (c * c) }),
		unary("sinh", AngleInput, DimensionlessOutput, math.Sinh, math.Cosh),
		unary("cosh", AngleInput, DimensionlessOutput, math.Cosh, math.Sinh),
		unary("tanh", AngleInput, DimensionlessOutput, math.Tanh,
			func(x float64) float64 { t := math.Tanh(x); return 1 - t*t }),

		unary("arcsin", DimensionlessInput, RadianOutput, math.Asin,
			func(x float64) float64 { return 1 / math.Sqrt(1-x*x) }),
		unary("arccos", DimensionlessInput, RadianOutput, math.Acos,
			func(x float64) float64 { return -1 / math.Sqrt(1-x*x) }),
		unary("arctan", DimensionlessInput, RadianOutput, math.Atan,
			func(x float64) float64 { return 1 / (1 + x*x) }),
		unary("arcsinh", DimensionlessInput, RadianOutput, math.Asinh,
			func(x float64) float64 { return 1 / math.Sqrt(x*x+1) }),
		unary("arccosh", DimensionlessInput, RadianOutput, math.Acosh,
			func(x float64) float64 { return 1 / math.Sqrt(x*x-1) }),
		unary("arctanh", DimensionlessInput, RadianOutput, math.Atanh,
			func(x float64) float64 { return 1 / (1 - x*x) }),
		{
			Name: "arctan2", Arity: 2, Input: SameUnitInput, Output: RadianOutput,
			Eval:  func(v []float64) float64 { return math.Atan2(v[0], v[1]) },
			Deriv: func(v, g []float64) {
				y, x := v[0], v[1]
				r := x*x + y*y
				g[0], g[1] = x/r, -y/r
			},
		},

		unary("exp", DimensionlessInput, DimensionlessOutput, math.Exp, math.Exp),
		unary("exp2", DimensionlessInput, DimensionlessOutput, math.Exp2,
			func(x float64) float64 { return math.Exp2(x) * ln2 }),
		unary("expm1", DimensionlessInput, DimensionlessOutput, math.Expm1, math.Exp),
		unary("log", DimensionlessInput, DimensionlessOutput, math.Log,
			func(x float64) float64 { return 1 / x }),
		unary("log2", DimensionlessInput, DimensionlessOutput, math.Log2,
			func(x float64) float64 { return 1 / (x * ln2) }),
		unary("log10", DimensionlessInput, DimensionlessOutput, math.Log10,
			func(x float64) float64 { return 1 / (x * ln10) }),
		unary("log1p", DimensionlessInput, DimensionlessOutput, math.Log1p,
			func(x float64) float64 { return 1 / (1 + x) }),

		// |d|x|/dx| = 1 everywhere, including 0.
		unary("absolute", AnyUnit, KeepUnit, math.Abs, sign1),
		unary("fabs", AnyUnit, KeepUnit, math.Abs, sign1),
		unary("negative", AnyUnit, KeepUnit,
			func(x float64) float64 { return -x }, constant(-1)),
		unary("positive", AnyUnit, KeepUnit, id, constant(1)),

		power("sqrt", 0.5, math.Sqrt,
			func(x float64) float64 { return 0.5 / math.Sqrt(x) }),
		power("cbrt", 1.0/3, math.Cbrt,
			func(x float64) float64 { c := math.Cbrt(x); return 1 / (3 * c * c) }),
		power("square", 2,
			func(x float64) float64 { return x * x },
			func(x float64) float64 { return 2 * x }),
		power("reciprocal", -1,
			func(x float64) float64 { return 1 / x },
			func(x float64) float64 { return -1 / (x * x) }),
		{
			Name: "hypot", Arity: 2, Input: SameUnitInput, Output: KeepUnit,
			Eval:  func(v []float64) float64 { return math.Hypot(v[0], v[1]) },
			Deriv: func(v, g []float64) {
				h := math.Hypot(v[0], v[1])
				// at the origin either operand moves the result one-for-one
				if h == 0 {
					g[0], g[1] = 1, 1
					return
				}
				g[0], g[1] = v[0]/h, v[1]/h
			},
		},

		unary("degrees", AngleInput, DegreeOutput,
			func(x float64) float64 { return x * radToDeg }, constant(radToDeg)),
		unary("rad2deg", AngleInput, DegreeOutput,
			func(x float64) float64 { return x * radToDeg }, constant(radToDeg)),
		unary("radians", AngleInput, RadianOutput, id, constant(1)),
		unary("deg2rad", AngleInput, RadianOutput, id, constant(1)),

		custom("add", 2, binary(Add)),
		custom("subtract", 2, binary(Sub)),
		custom("multiply", 2, binary(Mul)),
		custom("divide", 2, binary(Div)),
		custom("true_divide", 2, binary(Div)),
		custom("power", 2, binary(Pow)),
		custom("floor_divide", 2, binary(FloorDiv)),
		custom("remainder", 2, binary(Mod)),
		custom("mod", 2, binary(Mod)),
	}

	return hs
}

// ---------- typed wrappers ----------

// Sin returns sin(x) for an angle or dimensionless x.
func Sin(x any) (QFloat, error) { return CallUfunc("sin", nil, x) }

// Cos returns cos(x) for an angle or dimensionless x.
func Cos(x any) (QFloat, error) { return CallUfunc("cos", nil, x) }

// Tan returns tan(x) for an angle or dimensionless x.
func Tan(x any) (QFloat, error) { return CallUfunc("tan", nil, x) }

// Sinh returns sinh(x).
func Sinh(x any) (QFloat, error) { return CallUfunc("sinh", nil, x) }

// Cosh returns cosh(x).
func Cosh(x any) (QFloat, error) { return CallUfunc("cosh", nil, x) }

// Tanh returns tanh(x).
func Tanh(x any) (QFloat, error) { return CallUfunc("tanh", nil, x) }

// Arcsin returns asin(x) in radians.
func Arcsin(x any) (QFloat, error) { return CallUfunc("arcsin", nil, x) }

// Arccos returns acos(x) in radians.
func Arccos(x any) (QFloat, error) { return CallUfunc("arccos", nil, x) }

// Arctan returns atan(x) in radians.
func Arctan(x any) (QFloat, error) { return CallUfunc("arctan", nil, x) }

// Arcsinh returns asinh(x) in radians.
func Arcsinh(x any) (QFloat, error) { return CallUfunc("arcsinh", nil, x) }

// Arccosh returns acosh(x) in radians.
func Arccosh(x any) (QFloat, error) { return CallUfunc("arccosh", nil, x) }

// Arctanh returns atanh(x) in radians.
func Arctanh(x any) (QFloat, error) { return CallUfunc("arctanh", nil, x) }

// Arctan2 returns atan2(y, x) in radians; y and x must share a dimension.
func Arctan2(y, x any) (QFloat, error) { return CallUfunc("arctan2", nil, y, x) }

// Exp returns e**x.
func Exp(x any) (QFloat, error) { return CallUfunc("exp", nil, x) }

// Exp2 returns 2**x.
func Exp2(x any) (QFloat, error) { return CallUfunc("exp2", nil, x) }

// Expm1 returns e**x - 1.
func Expm1(x any) (QFloat, error) { return CallUfunc("expm1", nil, x) }

// Log returns the natural logarithm.
func Log(x any) (QFloat, error) { return CallUfunc("log", nil, x) }

// Log2 returns the base-2 logarithm.
func Log2(x any) (QFloat, error) { return CallUfunc("log2", nil, x) }

// Log10 returns the base-10 logarithm.
func Log10(x any) (QFloat, error) { return CallUfunc("log10", nil, x) }

// Log1p returns log(1 + x).
func Log1p(x any) (QFloat, error) { return CallUfunc("log1p", nil, x) }

// Sqrt returns the square root; the unit is raised to 1/2.
func Sqrt(x any) (QFloat, error) { return CallUfunc("sqrt", nil, x) }

// Cbrt returns the cube root; the unit is raised to 1/3.
func Cbrt(x any) (QFloat, error) { return CallUfunc("cbrt", nil, x) }

// Square returns x*x; the unit is squared.
func Square(x any) (QFloat, error) { return CallUfunc("square", nil, x) }

// Reciprocal returns 1/x; the unit is inverted.
func Reciprocal(x any) (QFloat, error) { return CallUfunc("reciprocal", nil, x) }

// Hypot returns sqrt(x² + y²) in x's unit.
func Hypot(x, y any) (QFloat, error) { return CallUfunc("hypot", nil, x, y) }

// Degrees converts an angle to degrees.
func Degrees(x any) (QFloat, error) { return CallUfunc("degrees", nil, x) }

// Radians converts an angle to radians.
func Radians(x any) (QFloat, error) { return CallUfunc("radians", nil, x) }
