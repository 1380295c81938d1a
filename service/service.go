package service

import (
	"errors"
	"fmt"
	"io"
	"log"

	"github.com/fulldump/telesync/align"
	"github.com/fulldump/telesync/collection"
	"github.com/fulldump/telesync/database"
)

type Config struct {
	Defaults align.Params
	Workers  int
	Logger   *log.Logger
}

type Service struct {
	db       *database.Database
	defaults align.Params
	workers  int
	logger   *log.Logger
}

func NewService(db *database.Database, config *Config) *Service {

	s := &Service{
		db:       db,
		defaults: align.DefaultParams(),
		workers:  1,
		logger:   log.New(io.Discard, "", 0),
	}
	if config == nil {
		return s
	}
	if config.Defaults != (align.Params{}) {
		s.defaults = config.Defaults
	}
	if config.Workers > 0 {
		s.workers = config.Workers
	}
	if config.Logger != nil {
		s.logger = config.Logger
	}

	return s
}

func (s *Service) CreateDataset(name string) (*Dataset, error) {

	col, err := s.db.CreateCollection(name)
	if errors.Is(err, database.ErrCollectionAlreadyExists) {
		return nil, ErrorDatasetAlreadyExists
	}
	if err != nil {
		return nil, err
	}

	err = col.Index("id", &collection.IndexMapOptions{Field: "id"})
	if err != nil {
		return nil, fmt.Errorf("index id: %w", err)
	}
	err = col.Index("fixes", &collection.IndexBTreeOptions{Fields: []string{"fixes"}})
	if err != nil {
		return nil, fmt.Errorf("index fixes: %w", err)
	}

	return &Dataset{
		Name:       name,
		Collection: col,
	}, nil
}

func (s *Service) GetDataset(name string) (*Dataset, error) {

	col, err := s.db.GetCollection(name)
	if errors.Is(err, database.ErrCollectionNotFound) {
		return nil, ErrorDatasetNotFound
	}
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Name:       name,
		Collection: col,
	}, nil
}

func (s *Service) ListDatasets() ([]*Dataset, error) {

	result := []*Dataset{}
	for _, name := range s.db.ListCollections() {
		dataset, err := s.GetDataset(name)
		if errors.Is(err, ErrorDatasetNotFound) {
			continue // dropped meanwhile
		}
		if err != nil {
			return nil, err
		}
		result = append(result, dataset)
	}

	return result, nil
}

func (s *Service) DeleteDataset(name string) error {

	err := s.db.DropCollection(name)
	if errors.Is(err, database.ErrCollectionNotFound) {
		return ErrorDatasetNotFound
	}

	return err
}
