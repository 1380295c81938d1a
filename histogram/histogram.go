// Package histogram fills occupancy histograms with unit bins starting at 0.
// Filling stops at the first offending entry; everything counted before it
// stays in the histogram.
package histogram

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrOutOfRange  = errors.New("histogram index out of range")
	ErrBinOverflow = errors.New("histogram bin overflow")
	ErrShape       = errors.New("histogram shape mismatch")
)

// Bins is the number of bins of a histogram with the given dimensions. It
// fails with ErrShape on negative dimensions or when the product does not fit
// in an int.
func Bins(dims ...int) (int, error) {

	bins := 1
	for _, d := range dims {
		if d < 0 {
			return 0, fmt.Errorf("%w: negative dimension %d", ErrShape, d)
		}
		if d != 0 && bins > math.MaxInt/d {
			return 0, fmt.Errorf("%w: %v bins overflow", ErrShape, dims)
		}
		bins *= d
	}

	return bins, nil
}

// Fill1D increments counts[x[i]] for every i.
func Fill1D(counts []uint32, nx int, x []int) error {

	if nx < 0 || len(counts) < nx {
		return fmt.Errorf("%w: %d bins do not fit in %d counts", ErrShape, nx, len(counts))
	}

	for _, xi := range x {
		if xi < 0 || xi >= nx {
			return fmt.Errorf("%w: x=%d", ErrOutOfRange, xi)
		}
		if counts[xi] == math.MaxUint32 {
			return fmt.Errorf("%w: bin x=%d holds %d entries", ErrBinOverflow, xi, counts[xi])
		}
		counts[xi]++
	}

	return nil
}

// Fill2D increments counts[x*ny+y] for every (x, y) pair.
func Fill2D(counts []uint32, nx, ny int, x, y []int) error {

	if len(x) != len(y) {
		return fmt.Errorf("%w: len(x)=%d len(y)=%d", ErrShape, len(x), len(y))
	}
	bins, err := Bins(nx, ny)
	if err != nil {
		return err
	}
	if len(counts) < bins {
		return fmt.Errorf("%w: %dx%d bins do not fit in %d counts", ErrShape, nx, ny, len(counts))
	}

	for i := range x {
		if x[i] < 0 || x[i] >= nx || y[i] < 0 || y[i] >= ny {
			return fmt.Errorf("%w: (x/y)=(%d/%d)", ErrOutOfRange, x[i], y[i])
		}
		bin := x[i]*ny + y[i]
		if counts[bin] == math.MaxUint32 {
			return fmt.Errorf("%w: bin (x/y)=(%d/%d) holds %d entries", ErrBinOverflow, x[i], y[i], counts[bin])
		}
		counts[bin]++
	}

	return nil
}

// Fill3D increments counts[(x*ny+y)*nz+z] for every (x, y, z) triple. Bins
// are 16 bit wide.
func Fill3D(counts []uint16, nx, ny, nz int, x, y, z []int) error {

	if len(x) != len(y) || len(x) != len(z) {
		return fmt.Errorf("%w: len(x)=%d len(y)=%d len(z)=%d", ErrShape, len(x), len(y), len(z))
	}
	bins, err := Bins(nx, ny, nz)
	if err != nil {
		return err
	}
	if len(counts) < bins {
		return fmt.Errorf("%w: %dx%dx%d bins do not fit in %d counts", ErrShape, nx, ny, nz, len(counts))
	}

	for i := range x {
		if x[i] < 0 || x[i] >= nx || y[i] < 0 || y[i] >= ny || z[i] < 0 || z[i] >= nz {
			return fmt.Errorf("%w: (x/y/z)=(%d/%d/%d)", ErrOutOfRange, x[i], y[i], z[i])
		}
		bin := (x[i]*ny+y[i])*nz + z[i]
		if counts[bin] == math.MaxUint16 {
			return fmt.Errorf("%w: bin (x/y/z)=(%d/%d/%d) holds %d entries", ErrBinOverflow, x[i], y[i], z[i], counts[bin])
		}
		counts[bin]++
	}

	return nil
}
