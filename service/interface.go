package service

import (
	"errors"

	"github.com/fulldump/telesync/align"
	"github.com/fulldump/telesync/collection"
)

var (
	ErrorDatasetNotFound      = errors.New("dataset not found")
	ErrorDatasetAlreadyExists = errors.New("dataset already exists")
	ErrorRunNotFound          = errors.New("run not found")
	ErrorInvalidJob           = errors.New("invalid job")
)

type Servicer interface {
	CreateDataset(name string) (*Dataset, error)
	GetDataset(name string) (*Dataset, error)
	ListDatasets() ([]*Dataset, error)
	DeleteDataset(name string) error

	Align(dataset string, job *Job) (*Run, error)
	AlignBatch(dataset string, jobs []*Job, workers int) ([]*Run, error)
	GetRun(dataset, id string) (*Run, error)
	RemoveRun(dataset, id string) (*Run, error)
}

// Dataset is a named run log.
type Dataset struct {
	Name       string
	Collection *collection.Collection
}

// Point is a [column, row] pair. [0, 0] is a virtual hit.
type Point [2]float64

func (p Point) Hit() align.Hit {
	return align.Hit{Column: p[0], Row: p[1]}
}

func PointOf(h align.Hit) Point {
	return Point{h.Column, h.Row}
}

// Job is one alignment request: two hit streams of a detector pair over the
// same trigger sequence.
type Job struct {
	Name       string        `json:"name"`
	Params     *align.Params `json:"params,omitempty"`
	Triggers   []int64       `json:"triggers"`
	Reference  []Point       `json:"reference"`
	Secondary  []Point       `json:"secondary"`
	Correlated []bool        `json:"correlated,omitempty"`
}

// Run is the stored result of a Job.
type Run struct {
	Id         string        `json:"id"`
	Name       string        `json:"name"`
	Created    int64         `json:"created"`
	NHits      int           `json:"n_hits"`
	Fixes      int           `json:"fixes"`
	Outcome    align.Outcome `json:"outcome"`
	BreakAt    int           `json:"break_at"`
	Correlated int           `json:"correlated"`
	Params     align.Params  `json:"params"`
	FixLog     []align.Fix   `json:"fix_log"`
	Secondary  []Point       `json:"secondary"`
	Mask       []bool        `json:"mask"`
}

// RunSummary is a Run without its per hit columns.
type RunSummary struct {
	Id         string        `json:"id"`
	Name       string        `json:"name"`
	Created    int64         `json:"created"`
	NHits      int           `json:"n_hits"`
	Fixes      int           `json:"fixes"`
	Outcome    align.Outcome `json:"outcome"`
	BreakAt    int           `json:"break_at"`
	Correlated int           `json:"correlated"`
	Params     align.Params  `json:"params"`
	FixLog     []align.Fix   `json:"fix_log"`
}
