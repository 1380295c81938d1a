package service

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/fulldump/telesync/collection"
	"github.com/fulldump/telesync/utils"
)

func (s *Service) GetRun(dataset, id string) (*Run, error) {

	d, err := s.GetDataset(dataset)
	if err != nil {
		return nil, err
	}

	row, err := d.Collection.FindByRow("id", id)
	if errors.Is(err, collection.ErrRowNotFound) {
		return nil, ErrorRunNotFound
	}
	if err != nil {
		return nil, err
	}

	run := &Run{}
	err = json.Unmarshal(row.Payload, run)
	if err != nil {
		return nil, err
	}

	return run, nil
}

func (s *Service) RemoveRun(dataset, id string) (*Run, error) {

	d, err := s.GetDataset(dataset)
	if err != nil {
		return nil, err
	}

	row, err := d.Collection.FindByRow("id", id)
	if errors.Is(err, collection.ErrRowNotFound) {
		return nil, ErrorRunNotFound
	}
	if err != nil {
		return nil, err
	}

	run := &Run{}
	err = json.Unmarshal(row.Payload, run)
	if err != nil {
		return nil, err
	}

	err = d.Collection.Remove(row)
	if errors.Is(err, collection.ErrRowNotFound) {
		return nil, ErrorRunNotFound // removed concurrently
	}
	if err != nil {
		return nil, err
	}

	return run, nil
}

// Summary drops the per hit columns of a run.
func Summary(run *Run) (*RunSummary, error) {
	summary := &RunSummary{}
	err := utils.Remarshal(run, summary)
	if err != nil {
		return nil, fmt.Errorf("summary of run '%s': %w", run.Id, err)
	}
	return summary, nil
}
