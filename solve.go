package poisson

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/mat"
)

// Factor is a Cholesky factorization of a Laplacian. It is read-only once
// built and may be shared by concurrent Solve calls.
type Factor struct {
	n    int
	chol mat.BandCholesky
}

// Factorize computes the banded Cholesky factorization of l.
func Factorize(l *Laplacian) (*Factor, error) {
	if l.n == 0 {
		return nil, fmt.Errorf("factorize: %w", ErrInvalidRegion)
	}
	f := &Factor{n: l.n}
	if ok := f.chol.Factorize(l.SymBand()); !ok {
		return nil, fmt.Errorf("factorize %d×%d: %w", l.n, l.n, ErrSingularSystem)
	}
	return f, nil
}

// Solve returns x with A·x = b.
func (f *Factor) Solve(b []float64) ([]float64, error) {
	if len(b) != f.n {
		return nil, fmt.Errorf("solve: rhs length %d, want %d: %w", len(b), f.n, ErrDimensionMismatch)
	}
	x := mat.NewVecDense(f.n, nil)
	if err := f.chol.SolveVecTo(x, mat.NewVecDense(f.n, b)); err != nil {
		var cond mat.Condition
		if errors.As(err, &cond) {
			return nil, fmt.Errorf("solve: condition number %g: %w", float64(cond), ErrSingularSystem)
		}
		return nil, fmt.Errorf("solve: %w", err)
	}
	return x.RawVector().Data, nil
}

// SolveChannels solves the three right-hand sides against the same factor,
// one goroutine per channel when parallel is set.
func SolveChannels(f *Factor, bs [3][]float64, parallel bool) ([3][]float64, error) {
	var xs [3][]float64
	if !parallel {
		for c := range bs {
			x, err := f.Solve(bs[c])
			if err != nil {
				return [3][]float64{}, fmt.Errorf("%s channel: %w", Channels[c], err)
			}
			xs[c] = x
		}
		return xs, nil
	}
	var g errgroup.Group
	for c := range bs {
		c := c
		g.Go(func() error {
			x, err := f.Solve(bs[c])
			if err != nil {
				return fmt.Errorf("%s channel: %w", Channels[c], err)
			}
			xs[c] = x
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return [3][]float64{}, err
	}
	return xs, nil
}
