package poisson

import (
	"image"

	"gonum.org/v1/gonum/mat"
)

// neighbours lists the 4-neighbour offsets in the fixed order north, east, south, west.
var neighbours = [4]image.Point{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

type entry struct {
	col int
	val float64
}

// Laplacian is the sparse N×N coefficient matrix of the discrete Laplacian
// restricted to a region. Row i belongs to the i-th interior pixel.
type Laplacian struct {
	n         int
	bandwidth int
	rows      [][]entry
}

// BuildLaplacian assembles the matrix for r. The diagonal is always 4 and
// every interior neighbour contributes -1; neighbours outside the region
// are left to the guidance vector.
func BuildLaplacian(r *Region) *Laplacian {
	l := &Laplacian{
		n:         r.N,
		bandwidth: r.Bandwidth(),
		rows:      make([][]entry, r.N),
	}
	r.Each(func(i, x, y int) {
		row := make([]entry, 1, 5)
		row[0] = entry{col: i, val: 4}
		for _, d := range neighbours {
			if j := r.Index(x+d.X, y+d.Y); j >= 0 {
				row = append(row, entry{col: j, val: -1})
			}
		}
		l.rows[i] = row
	})
	return l
}

// Dims returns the matrix size; the matrix is square.
func (l *Laplacian) Dims() (r, c int) { return l.n, l.n }

func (l *Laplacian) Bandwidth() int { return l.bandwidth }

// At returns A[i,j]; entries that were never set are zero.
func (l *Laplacian) At(i, j int) float64 {
	for _, e := range l.rows[i] {
		if e.col == j {
			return e.val
		}
	}
	return 0
}

// Row returns the column indices and values stored for row i.
func (l *Laplacian) Row(i int) (cols []int, vals []float64) {
	for _, e := range l.rows[i] {
		cols = append(cols, e.col)
		vals = append(vals, e.val)
	}
	return cols, vals
}

// NNZ is the number of stored entries.
func (l *Laplacian) NNZ() int {
	nnz := 0
	for _, row := range l.rows {
		nnz += len(row)
	}
	return nnz
}

// IsSymmetric reports whether every stored off-diagonal entry has a matching transpose.
func (l *Laplacian) IsSymmetric() bool {
	for i, row := range l.rows {
		for _, e := range row {
			if l.At(e.col, i) != e.val {
				return false
			}
		}
	}
	return true
}

// SymBand copies the upper triangle into gonum banded storage.
func (l *Laplacian) SymBand() *mat.SymBandDense {
	k := min(l.bandwidth, max(l.n-1, 0))
	a := mat.NewSymBandDense(l.n, k, nil)
	for i, row := range l.rows {
		for _, e := range row {
			if e.col >= i {
				a.SetSymBand(i, e.col, e.val)
			}
		}
	}
	return a
}
