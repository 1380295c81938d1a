package apitoolsv1

import (
	"context"
	"fmt"

	hist "github.com/fulldump/telesync/histogram"
)

type histogramRequest struct {
	Nx int   `json:"nx"`
	Ny int   `json:"ny"`
	Nz int   `json:"nz"`
	X  []int `json:"x"`
	Y  []int `json:"y"`
	Z  []int `json:"z"`
}

type histogramResponse struct {
	Shape  []int `json:"shape"`
	Counts any   `json:"counts"`
}

// histogram fills a 1D, 2D or 3D histogram depending on which of ny and nz
// are set.
func histogram(ctx context.Context, input *histogramRequest) (*histogramResponse, error) {

	if input.Nx < 0 || input.Ny < 0 || input.Nz < 0 {
		return nil, fmt.Errorf("%w: negative dimensions", hist.ErrShape)
	}

	dims := []int{input.Nx}
	switch {
	case input.Nz > 0:
		dims = append(dims, input.Ny, input.Nz)
	case input.Ny > 0:
		dims = append(dims, input.Ny)
	}

	bins, err := hist.Bins(dims...)
	if err != nil {
		return nil, err
	}
	if limit := getLimits(ctx).MaxBins; bins > limit {
		return nil, fmt.Errorf("%w: %d bins, at most %d allowed", ErrTooLarge, bins, limit)
	}

	switch {
	case input.Nz > 0:
		counts := make([]uint16, input.Nx*input.Ny*input.Nz)
		err = hist.Fill3D(counts, input.Nx, input.Ny, input.Nz, input.X, input.Y, input.Z)
		if err != nil {
			return nil, err
		}
		return &histogramResponse{Shape: []int{input.Nx, input.Ny, input.Nz}, Counts: counts}, nil

	case input.Ny > 0:
		counts := make([]uint32, input.Nx*input.Ny)
		err = hist.Fill2D(counts, input.Nx, input.Ny, input.X, input.Y)
		if err != nil {
			return nil, err
		}
		return &histogramResponse{Shape: []int{input.Nx, input.Ny}, Counts: counts}, nil
	}

	counts := make([]uint32, input.Nx)
	err = hist.Fill1D(counts, input.Nx, input.X)
	if err != nil {
		return nil, err
	}
	return &histogramResponse{Shape: []int{input.Nx}, Counts: counts}, nil
}
