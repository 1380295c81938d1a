package apidatasetv1

import "github.com/fulldump/telesync/service"

type DatasetResponse struct {
	Name    string `json:"name"`
	Total   int    `json:"total"`
	Indexes int    `json:"indexes"`
}

func newDatasetResponse(d *service.Dataset) *DatasetResponse {
	return &DatasetResponse{
		Name:    d.Name,
		Total:   d.Collection.Len(),
		Indexes: len(d.Collection.Indexes),
	}
}
