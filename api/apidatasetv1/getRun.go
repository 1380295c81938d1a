package apidatasetv1

import (
	"context"

	"github.com/fulldump/box"

	"github.com/fulldump/telesync/service"
)

func getRun(ctx context.Context) (*service.Run, error) {

	datasetName := box.GetUrlParameter(ctx, "datasetName")
	runId := box.GetUrlParameter(ctx, "runId")

	return GetServicer(ctx).GetRun(datasetName, runId)
}
