package apidatasetv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/telesync/service"
)

func align(ctx context.Context, w http.ResponseWriter, input *service.Job) (*service.RunSummary, error) {

	datasetName := box.GetUrlParameter(ctx, "datasetName")

	run, err := GetServicer(ctx).Align(datasetName, input)
	if err != nil {
		return nil, err
	}

	summary, err := service.Summary(run)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return summary, nil
}
