package apidatasetv1

import (
	"github.com/fulldump/box"

	"github.com/fulldump/telesync/service"
)

func BuildV1Dataset(v1 *box.R, s service.Servicer) *box.R {

	datasets := v1.Resource("/datasets").
		WithActions(
			box.Get(listDatasets),
			box.Post(createDataset),
		)

	v1.Resource("/datasets/{datasetName}").
		WithActions(
			box.Get(getDataset),
			box.ActionPost(dropDataset),
			box.ActionPost(align),
			box.ActionPost(alignBatch),
			box.ActionPost(find),
		)

	v1.Resource("/datasets/{datasetName}/runs/{runId}").
		WithActions(
			box.Get(getRun),
			box.ActionPost(removeRun),
		)

	return datasets
}
