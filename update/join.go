package update

import "math"

// JoinFunc combines an existing cell with a modifier cell.
type JoinFunc func(old, modifier float64) float64

// Cell join functions used by modify updates.
var (
	OpReplace  JoinFunc = func(_, m float64) float64 { return m }
	OpAdd      JoinFunc = func(a, m float64) float64 { return a + m }
	OpMultiply JoinFunc = func(a, m float64) float64 { return a * m }
	OpMin      JoinFunc = math.Min
	OpMax      JoinFunc = math.Max
)
