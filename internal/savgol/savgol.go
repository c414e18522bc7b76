// Package savgol builds Savitzky-Golay derivative filters: a local
// polynomial least-squares fit evaluated at the window center, applied as
// a fixed-coefficient convolution. spec.md §3 calls for window=3,
// polyorder=2 derivatives of soil_moisture (deriv1, deriv2); the general
// coefficient solve here is sized for that window but is not hard-coded to
// it, so a differently-tuned filter needs no new machinery.
package savgol

import (
	"gonum.org/v1/gonum/mat"

	"soilqc/domain/series"
)

// Filter holds the convolution coefficients for one derivative order of a
// fixed (window, polyorder) Savitzky-Golay fit.
type Filter struct {
	window    int
	half      int
	coeffs    []float64 // coeffs[k] multiplies the sample at offset k-half
}

// New builds the coefficient set for the given odd window size, polynomial
// order and derivative order (0 = smoothed value, 1 = first derivative,
// 2 = second derivative), evaluated at the window's center sample.
//
// The fit solves, in the least-squares sense, for polynomial coefficients
// b such that sum_k b_k * t_k^k approximates the windowed samples at
// offsets t in [-half, half]; the derivative coefficients are then
// derivOrder! * b_derivOrder, read back through the same Vandermonde
// pseudo-inverse used to fit the polynomial. For window=3, polyorder=2
// this reduces to the textbook closed form:
//
//	deriv1[i] = (x[i+1] - x[i-1]) / 2
//	deriv2[i] = x[i-1] - 2*x[i] + x[i+1]
func New(window, polyorder, derivOrder int) Filter {
	if window%2 == 0 {
		panic("savgol: window must be odd")
	}
	half := window / 2

	// Vandermonde matrix: rows are window offsets, columns are powers
	// 0..polyorder.
	a := mat.NewDense(window, polyorder+1, nil)
	for row := 0; row < window; row++ {
		t := float64(row - half)
		p := 1.0
		for col := 0; col <= polyorder; col++ {
			a.Set(row, col, p)
			p *= t
		}
	}

	// Solve the normal equations (A^T A) c = A^T e_derivOrder for each unit
	// impulse e_k, i.e. invert (A^T A) once and read off the derivOrder-th
	// row of pinv(A) = (A^T A)^-1 A^T; that row gives the convolution
	// weights that map a window of samples directly onto the fitted
	// polynomial's derivOrder-th coefficient.
	var ata mat.Dense
	ata.Mul(a.T(), a)
	var ataInv mat.Dense
	if err := ataInv.Inverse(&ata); err != nil {
		panic("savgol: singular design matrix for window=" + itoa(window) + " polyorder=" + itoa(polyorder))
	}
	var pinv mat.Dense
	pinv.Mul(&ataInv, a.T())

	coeffs := make([]float64, window)
	factorial := 1.0
	for k := 2; k <= derivOrder; k++ {
		factorial *= float64(k)
	}
	for col := 0; col < window; col++ {
		coeffs[col] = factorial * pinv.At(derivOrder, col)
	}
	return Filter{window: window, half: half, coeffs: coeffs}
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	neg := n < 0
	if neg {
		n = -n
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}

// clampIndex maps an out-of-range index to its nearest in-range neighbour
// (scipy's `mode='nearest'`: the virtual sample before x[0] is x[0]
// itself, not x[1]), the convention used wherever a fixed window runs off
// either end of the series.
func clampIndex(i, n int) int {
	if i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// Apply convolves x with the filter's coefficients, clamping at both
// edges so every output index is defined.
func (f Filter) Apply(x []float64) []float64 {
	n := len(x)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		sum := 0.0
		missing := false
		for k := 0; k < f.window; k++ {
			j := clampIndex(i+k-f.half, n)
			if series.IsMissing(x[j]) {
				missing = true
				break
			}
			sum += f.coeffs[k] * x[j]
		}
		if missing {
			out[i] = series.Missing()
			continue
		}
		out[i] = sum
	}
	return out
}

var (
	deriv1Filter = New(3, 2, 1)
	deriv2Filter = New(3, 2, 2)
)

// Derivatives computes the window=3, polyorder=2 first and second
// derivatives of x, the form spec.md §3 requires for soil_moisture. A
// window touching a missing sample yields a missing derivative at that
// index; it does not propagate beyond the touched positions.
func Derivatives(x []float64) (deriv1, deriv2 []float64) {
	return deriv1Filter.Apply(x), deriv2Filter.Apply(x)
}
