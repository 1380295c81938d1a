package apidatasetv1

import (
	"context"
)

func listDatasets(ctx context.Context) ([]*DatasetResponse, error) {

	datasets, err := GetServicer(ctx).ListDatasets()
	if err != nil {
		return nil, err
	}

	result := make([]*DatasetResponse, 0, len(datasets))
	for _, d := range datasets {
		result = append(result, newDatasetResponse(d))
	}

	return result, nil
}
