package apidatasetv1

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/telesync/service"
)

type alignBatchRequest struct {
	Workers int            `json:"workers"`
	Jobs    []*service.Job `json:"jobs"`
}

func alignBatch(ctx context.Context, w http.ResponseWriter, input *alignBatchRequest) ([]*service.RunSummary, error) {

	if len(input.Jobs) == 0 {
		return nil, fmt.Errorf("%w: at least one job is required", ErrBadRequest)
	}
	for i, job := range input.Jobs {
		if job == nil {
			return nil, fmt.Errorf("%w: job %d is null", ErrBadRequest, i)
		}
	}

	datasetName := box.GetUrlParameter(ctx, "datasetName")

	runs, err := GetServicer(ctx).AlignBatch(datasetName, input.Jobs, input.Workers)
	if err != nil {
		return nil, err
	}

	result := make([]*service.RunSummary, len(runs))
	for i, run := range runs {
		result[i], err = service.Summary(run)
		if err != nil {
			return nil, err
		}
	}

	w.WriteHeader(http.StatusCreated)
	return result, nil
}
