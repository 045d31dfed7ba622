package spectrum

import (
	gomath "math"
	"sync"
)

var (
	tableOnce sync.Once
	table     *SigmoidTable
)

func globalTable() *SigmoidTable {
	tableOnce.Do(func() {
		table = BuildSigmoidTable()
	})
	return table
}

// RGBToSpectrum converts a linear RGB reflectance (each component in
// [0,1]) into an RgbSigmoidPolynomial via trilinear interpolation over the
// baked table, the runtime counterpart to the one-time Gauss-Newton fit in
// table_build.go.
func RGBToSpectrum(c [3]float64) RgbSigmoidPolynomial {
	t := globalTable()

	maxC := 0
	for i := 1; i < 3; i++ {
		if c[i] > c[maxC] {
			maxC = i
		}
	}
	z := c[maxC]
	if z <= 0 {
		return RgbSigmoidPolynomial{}
	}
	other := [2]int{(maxC + 1) % 3, (maxC + 2) % 3}
	x := clamp01f(c[other[0]] / z)
	y := clamp01f(c[other[1]] / z)

	zi, zf := findZNode(t.ZNodes, z)
	xi, xf := floatIndex(x, tableRes)
	yi, yf := floatIndex(y, tableRes)

	var result [3]float64
	for k := 0; k < 3; k++ {
		result[k] = trilerp(t.Coeffs[maxC], xi, yi, zi, xf, yf, zf, k)
	}
	return RgbSigmoidPolynomial{C0: result[0], C1: result[1], C2: result[2]}
}

func findZNode(nodes [tableRes]float64, z float64) (int, float64) {
	if z <= nodes[0] {
		return 0, 0
	}
	if z >= nodes[tableRes-1] {
		return tableRes - 2, 1
	}
	for i := 0; i < tableRes-1; i++ {
		if z >= nodes[i] && z <= nodes[i+1] {
			span := nodes[i+1] - nodes[i]
			if span <= 0 {
				return i, 0
			}
			return i, (z - nodes[i]) / span
		}
	}
	return tableRes - 2, 1
}

func floatIndex(v float64, res int) (int, float64) {
	pos := v * float64(res-1)
	i := int(gomath.Floor(pos))
	if i < 0 {
		i = 0
	}
	if i > res-2 {
		i = res - 2
	}
	return i, pos - float64(i)
}

func trilerp(grid [tableRes][tableRes][tableRes][3]float64, xi, yi, zi int, xf, yf, zf float64, k int) float64 {
	get := func(z, y, x int) float64 { return grid[z][y][x][k] }
	c00 := lerp(get(zi, yi, xi), get(zi, yi, xi+1), xf)
	c01 := lerp(get(zi, yi+1, xi), get(zi, yi+1, xi+1), xf)
	c10 := lerp(get(zi+1, yi, xi), get(zi+1, yi, xi+1), xf)
	c11 := lerp(get(zi+1, yi+1, xi), get(zi+1, yi+1, xi+1), xf)
	c0 := lerp(c00, c01, yf)
	c1 := lerp(c10, c11, yf)
	return lerp(c0, c1, zf)
}

func lerp(a, b, t float64) float64 { return a + (b-a)*t }
