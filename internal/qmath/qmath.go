// Package qmath provides the complex linear algebra needed to build unitary
// gate matrices: Kronecker products, adjoints, and the matrix exponential.
// Matrices are stored as gonum CDense; operations that gonum does not expose
// for complex matrices are implemented here directly.
package qmath

import (
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"
)

// Identity returns the n×n identity matrix.
func Identity(n int) *mat.CDense {
	m := mat.NewCDense(n, n, nil)
	for i := 0; i < n; i++ {
		m.Set(i, i, 1)
	}
	return m
}

// Kron returns the Kronecker (tensor) product a⊗b.
func Kron(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	out := mat.NewCDense(ar*br, ac*bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			aij := a.At(i, j)
			for k := 0; k < br; k++ {
				for l := 0; l < bc; l++ {
					out.Set(i*br+k, j*bc+l, aij*b.At(k, l))
				}
			}
		}
	}
	return out
}

// Adjoint returns the conjugate transpose a†.
func Adjoint(a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(c, r, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(j, i, cmplx.Conj(a.At(i, j)))
		}
	}
	return out
}

// Mul returns the matrix product a·b.
func Mul(a, b *mat.CDense) *mat.CDense {
	ar, ac := a.Dims()
	_, bc := b.Dims()
	out := mat.NewCDense(ar, bc, nil)
	for i := 0; i < ar; i++ {
		for j := 0; j < bc; j++ {
			var sum complex128
			for k := 0; k < ac; k++ {
				sum += a.At(i, k) * b.At(k, j)
			}
			out.Set(i, j, sum)
		}
	}
	return out
}

// Scale returns f·a.
func Scale(f complex128, a *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, f*a.At(i, j))
		}
	}
	return out
}

func add(a, b *mat.CDense) *mat.CDense {
	r, c := a.Dims()
	out := mat.NewCDense(r, c, nil)
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			out.Set(i, j, a.At(i, j)+b.At(i, j))
		}
	}
	return out
}

// maxAbs returns the largest entry magnitude, used to pick the scaling
// factor for Expm.
func maxAbs(a *mat.CDense) float64 {
	r, c := a.Dims()
	max := 0.0
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			if v := cmplx.Abs(a.At(i, j)); v > max {
				max = v
			}
		}
	}
	return max
}

// expmTaylorTerms bounds the Taylor series; with the scaled argument norm
// kept below 0.5, 24 terms are far past double precision.
const expmTaylorTerms = 24

// Expm returns the matrix exponential e^a for a square complex matrix,
// using scaling-and-squaring around a Taylor series. gonum's Expm only
// covers real symmetric input, so the complex case lives here.
func Expm(a *mat.CDense) (*mat.CDense, error) {
	r, c := a.Dims()
	if r != c {
		return nil, fmt.Errorf("expm requires a square matrix, got %dx%d", r, c)
	}

	// Scale a down until its entries are small, exponentiate the scaled
	// matrix by series, then square the result back up.
	squarings := 0
	norm := maxAbs(a) * float64(r)
	for norm > 0.5 && squarings < 32 {
		norm /= 2
		squarings++
	}
	scaled := Scale(complex(1/math.Pow(2, float64(squarings)), 0), a)

	result := Identity(r)
	term := Identity(r)
	for k := 1; k <= expmTaylorTerms; k++ {
		term = Mul(term, scaled)
		term = Scale(complex(1/float64(k), 0), term)
		result = add(result, term)
	}

	for s := 0; s < squarings; s++ {
		result = Mul(result, result)
	}
	return result, nil
}

// IsUnitary reports whether u·u† is the identity within tol.
func IsUnitary(u *mat.CDense, tol float64) bool {
	r, c := u.Dims()
	if r != c {
		return false
	}
	return EqualApprox(Mul(u, Adjoint(u)), Identity(r), tol)
}

// EqualApprox reports whether a and b have the same shape and entries
// within tol in magnitude.
func EqualApprox(a, b *mat.CDense, tol float64) bool {
	ar, ac := a.Dims()
	br, bc := b.Dims()
	if ar != br || ac != bc {
		return false
	}
	for i := 0; i < ar; i++ {
		for j := 0; j < ac; j++ {
			if cmplx.Abs(a.At(i, j)-b.At(i, j)) > tol {
				return false
			}
		}
	}
	return true
}
