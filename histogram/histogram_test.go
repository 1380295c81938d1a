package histogram

import (
	"errors"
	"math"
	"testing"

	"github.com/fulldump/biff"
)

func TestFill1D(t *testing.T) {

	biff.Alternative("Fill", func(a *biff.A) {
		counts := make([]uint32, 3)
		err := Fill1D(counts, 3, []int{0, 1, 2})
		a.AssertNil(err)
		a.AssertEqual(counts, []uint32{1, 1, 1})

		a.Alternative("Out of range keeps previous increments", func(a *biff.A) {
			err := Fill1D(counts, 3, []int{1, 3, 0})
			a.AssertTrue(errors.Is(err, ErrOutOfRange))
			a.AssertEqual(counts, []uint32{1, 2, 1})
		})

		a.Alternative("Negative index", func(a *biff.A) {
			err := Fill1D(counts, 3, []int{-1})
			a.AssertTrue(errors.Is(err, ErrOutOfRange))
		})
	})

	biff.Alternative("Overflow", func(a *biff.A) {
		counts := []uint32{math.MaxUint32 - 1}
		err := Fill1D(counts, 1, []int{0, 0})
		a.AssertTrue(errors.Is(err, ErrBinOverflow))
		a.AssertEqual(counts[0], uint32(math.MaxUint32))
	})

	biff.Alternative("Buffer too small", func(a *biff.A) {
		err := Fill1D(make([]uint32, 2), 3, []int{0})
		a.AssertTrue(errors.Is(err, ErrShape))
	})
}

func TestFill2D(t *testing.T) {

	counts := make([]uint32, 6)
	err := Fill2D(counts, 2, 3, []int{0, 1, 1}, []int{2, 0, 0})
	biff.AssertNil(err)
	biff.AssertEqual(counts, []uint32{0, 0, 1, 2, 0, 0})

	err = Fill2D(counts, 2, 3, []int{0}, []int{3})
	biff.AssertTrue(errors.Is(err, ErrOutOfRange))

	err = Fill2D(counts, 2, 3, []int{0, 1}, []int{3})
	biff.AssertTrue(errors.Is(err, ErrShape))
}

func TestFill3D(t *testing.T) {

	counts := make([]uint16, 2*2*2)
	err := Fill3D(counts, 2, 2, 2, []int{1, 0}, []int{0, 1}, []int{1, 1})
	biff.AssertNil(err)
	biff.AssertEqual(counts, []uint16{0, 0, 0, 1, 0, 1, 0, 0})

	counts[0] = math.MaxUint16
	err = Fill3D(counts, 2, 2, 2, []int{0}, []int{0}, []int{0})
	biff.AssertTrue(errors.Is(err, ErrBinOverflow))

	err = Fill3D(counts, 2, 2, 2, []int{2}, []int{0}, []int{0})
	biff.AssertEqual(err.Error(), "histogram index out of range: (x/y/z)=(2/0/0)")
}

func TestBins(t *testing.T) {

	bins, err := Bins(2, 3, 4)
	biff.AssertNil(err)
	biff.AssertEqual(bins, 24)

	bins, err = Bins(0, math.MaxInt)
	biff.AssertNil(err)
	biff.AssertEqual(bins, 0)

	_, err = Bins(1<<62+1, 4)
	biff.AssertTrue(errors.Is(err, ErrShape))

	_, err = Bins(3, -1)
	biff.AssertTrue(errors.Is(err, ErrShape))
}

func TestFill_WrappedShape(t *testing.T) {

	// nx*ny wraps around to 4
	nx, ny := 1<<62+1, 4
	counts := make([]uint32, 4)

	err := Fill2D(counts, nx, ny, []int{5}, []int{0})
	biff.AssertTrue(errors.Is(err, ErrShape))
	biff.AssertEqual(counts, []uint32{0, 0, 0, 0})

	err = Fill3D(make([]uint16, 4), nx, 2, 2, []int{5}, []int{0}, []int{0})
	biff.AssertTrue(errors.Is(err, ErrShape))
}
