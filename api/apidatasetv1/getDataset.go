package apidatasetv1

import (
	"context"

	"github.com/fulldump/box"
)

func getDataset(ctx context.Context) (*DatasetResponse, error) {

	datasetName := box.GetUrlParameter(ctx, "datasetName")

	d, err := GetServicer(ctx).GetDataset(datasetName)
	if err != nil {
		return nil, err
	}

	return newDatasetResponse(d), nil
}
