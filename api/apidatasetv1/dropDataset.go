package apidatasetv1

import (
	"context"
	"net/http"

	"github.com/fulldump/box"
)

func dropDataset(ctx context.Context, w http.ResponseWriter) error {

	datasetName := box.GetUrlParameter(ctx, "datasetName")

	return GetServicer(ctx).DeleteDataset(datasetName)
}
