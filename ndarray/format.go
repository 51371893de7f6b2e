// SPDX-License-Identifier: MIT

package ndarray

import "strings"

// ---------- Formatting literals ----------
const (
	_fmtOpen  = "["
	_fmtClose = "]"
	_fmtSep   = " "
)

// Format renders a row-major array of the given shape with numpy-style
// nested brackets; elem formats the element at a flat offset. Scalars print
// bare; inner rows are separated by a newline plus alignment spaces.
//
//	[[1 2]
//	 [3 4]]
func Format(shape []int, elem func(i int) string) string {
	if len(shape) == 0 {
		return elem(0)
	}
	var b strings.Builder
	formatLevel(&b, shape, 0, 0, elem)

	return b.String()
}

// formatLevel writes dimension depth starting at flat offset base.
func formatLevel(b *strings.Builder, shape []int, depth, base int, elem func(int) string) {
	b.WriteString(_fmtOpen)
	n := shape[depth]
	if depth == len(shape)-1 {
		for i := 0; i < n; i++ {
			if i > 0 {
				b.WriteString(_fmtSep)
			}
			b.WriteString(elem(base + i))
		}
		b.WriteString(_fmtClose)
		return
	}
	block := sizeOf(shape[depth+1:])
	for i := 0; i < n; i++ {
		if i > 0 {
			b.WriteString("\n")
			b.WriteString(strings.Repeat(" ", depth+1))
		}
		formatLevel(b, shape, depth+1, base+i*block, elem)
	}
	b.WriteString(_fmtClose)
}
