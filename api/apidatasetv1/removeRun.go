package apidatasetv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"

	"github.com/fulldump/telesync/service"
)

func removeRun(ctx context.Context, w http.ResponseWriter) (*service.RunSummary, error) {

	datasetName := box.GetUrlParameter(ctx, "datasetName")
	runId := box.GetUrlParameter(ctx, "runId")

	run, err := GetServicer(ctx).RemoveRun(datasetName, runId)
	if err != nil {
		return nil, err
	}

	return service.Summary(run)
}
