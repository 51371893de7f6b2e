// SPDX-License-Identifier: MIT

package qfloat_test

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/qfloat/qfloat"
)

// ExampleAdd shows uncertainties of independent operands combining in
// quadrature.
func ExampleAdd() {
	a := qfloat.MustScalar(1, 0.1, "m")
	b := qfloat.MustScalar(2, 0.1, "m")
	sum, err := qfloat.Add(a, b)
	if err != nil {
		fmt.Println(err)
		return
	}
	fmt.Println(sum)
	// Output: 3.0+-0.1 m
}

func ExampleQFloat_Div() {
	distance := qfloat.MustScalar(60, 0.5, "km")
	duration := qfloat.MustScalar(2, 0.1, "h")
	v, _ := distance.Div(duration)
	fmt.Println(v)
	// Output: 30+-2 km / h
}

func ExampleQFloat_To() {
	q, _ := qfloat.MustScalar(1.5, 0.1, "km").To("m")
	fmt.Println(q)
	// Output: 1500+-100 m
}

func ExampleSin() {
	s, _ := qfloat.Sin(qfloat.MustScalar(30, 0.1, "deg"))
	fmt.Println(s)
	// Output: 0.500+-0.002
}

// ExampleEqual compares across units: 1 m and 100 cm are the same value.
func ExampleEqual() {
	fmt.Println(qfloat.Equal(qfloat.MustScalar(1, 0.1, "m"), qfloat.MustScalar(100, 10, "cm")))
	// Output: true
}

func ExampleCallArrayFunc() {
	q, _ := qfloat.New([]float64{1, 2, 3, 4}, qfloat.WithUncertainty(0.5), qfloat.WithUnit("s"))
	r, _ := qfloat.CallArrayFunc("reshape", qfloat.Kwargs{"shape": []int{2, 2}}, q)
	fmt.Println(r)
	// Output:
	// [[1.0+-0.5 2.0+-0.5]
	//  [3.0+-0.5 4.0+-0.5]] s
}

func Example_incompatibleUnits() {
	_, err := qfloat.Add(qfloat.MustScalar(1, 0, "kg"), qfloat.MustScalar(1, 0, "K"))
	fmt.Println(errors.Is(err, qfloat.ErrUnits))
	// Output: true
}
