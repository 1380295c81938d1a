package apidatasetv1

import (
	"context"
	"net/http"
)

type createDatasetRequest struct {
	Name string `json:"name"`
}

func createDataset(ctx context.Context, w http.ResponseWriter, input *createDatasetRequest) (*DatasetResponse, error) {

	d, err := GetServicer(ctx).CreateDataset(input.Name)
	if err != nil {
		return nil, err
	}

	w.WriteHeader(http.StatusCreated)
	return newDatasetResponse(d), nil
}
