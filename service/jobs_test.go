package service

import (
	"errors"
	"testing"

	"github.com/fulldump/biff"

	"github.com/fulldump/telesync/align"
	"github.com/fulldump/telesync/database"
)

func newTestService(t *testing.T) *Service {
	db := database.NewDatabase(&database.Config{Dir: t.TempDir()})
	biff.AssertNil(db.Load())
	t.Cleanup(func() { db.Stop() })

	return NewService(db, &Config{
		Defaults: align.Params{Tolerance: 0.5, BadTriggers: 3, SearchRadius: 10, GoodTriggers: 3},
		Workers:  4,
	})
}

func TestAlign_StoresRun(t *testing.T) {

	s := newTestService(t)
	_, err := s.CreateDataset("telescope")
	biff.AssertNil(err)

	run, err := s.Align("telescope", ShiftedJob("dut1", 40, 10))
	biff.AssertNil(err)
	biff.AssertEqual(run.Fixes, 1)
	biff.AssertEqual(run.Outcome, align.Done)
	biff.AssertEqual(run.NHits, 40)
	biff.AssertEqual(run.Correlated, 40)
	biff.AssertEqual(run.FixLog, []align.Fix{{Ref: 10, Sec: 11, Offset: 1}})

	stored, err := s.GetRun("telescope", run.Id)
	biff.AssertNil(err)
	biff.AssertEqual(stored.Secondary[10], Point{HitPoint(10)[0], HitPoint(10)[1]})
	biff.AssertEqual(stored.Secondary[39], Point{0, 0})

	removed, err := s.RemoveRun("telescope", run.Id)
	biff.AssertNil(err)
	biff.AssertEqual(removed.Id, run.Id)

	_, err = s.GetRun("telescope", run.Id)
	biff.AssertEqual(err, ErrorRunNotFound)
}

func TestAlign_Errors(t *testing.T) {

	s := newTestService(t)

	_, err := s.Align("missing", ShiftedJob("dut1", 10, 2))
	biff.AssertEqual(err, ErrorDatasetNotFound)

	s.CreateDataset("telescope")
	_, err = s.CreateDataset("telescope")
	biff.AssertEqual(err, ErrorDatasetAlreadyExists)

	job := ShiftedJob("dut1", 10, 2)
	job.Secondary = job.Secondary[:9]
	_, err = s.Align("telescope", job)
	biff.AssertTrue(errors.Is(err, align.ErrLengthMismatch))

	biff.AssertEqual(s.DeleteDataset("missing"), ErrorDatasetNotFound)
}

func TestAlignBatch_KeepsOrder(t *testing.T) {

	s := newTestService(t)
	d, _ := s.CreateDataset("telescope")

	jobs := []*Job{}
	for k := 5; k < 25; k++ {
		jobs = append(jobs, ShiftedJob("dut", 40, k))
	}

	runs, err := s.AlignBatch("telescope", jobs, 0)
	biff.AssertNil(err)
	biff.AssertEqual(len(runs), len(jobs))
	for i, run := range runs {
		biff.AssertEqual(run.FixLog[0].Ref, i+5)
	}
	biff.AssertEqual(d.Collection.Len(), len(jobs))
}

func TestAlignBatch_NilJob(t *testing.T) {

	s := newTestService(t)
	d, _ := s.CreateDataset("telescope")

	runs, err := s.AlignBatch("telescope", []*Job{nil, ShiftedJob("ok", 20, 5)}, 2)
	biff.AssertTrue(errors.Is(err, ErrorInvalidJob))
	biff.AssertNil(runs[0])
	biff.AssertNotNil(runs[1])
	biff.AssertEqual(d.Collection.Len(), 1)

	_, err = s.Align("telescope", nil)
	biff.AssertTrue(errors.Is(err, ErrorInvalidJob))
}

func TestAlignBatch_FirstError(t *testing.T) {

	s := newTestService(t)
	s.CreateDataset("telescope")

	broken := ShiftedJob("broken", 10, 2)
	broken.Triggers[3] = 0

	runs, err := s.AlignBatch("telescope", []*Job{ShiftedJob("ok", 20, 5), broken}, 2)
	biff.AssertTrue(errors.Is(err, align.ErrTriggersNotSorted))
	biff.AssertNotNil(runs[0])
	biff.AssertNil(runs[1])
}

func TestSummary(t *testing.T) {

	run := &Run{
		Id:        "r1",
		Name:      "dut1",
		NHits:     2,
		Fixes:     1,
		Outcome:   align.Done,
		BreakAt:   -1,
		FixLog:    []align.Fix{{Ref: 1, Sec: 2, Offset: 1}},
		Secondary: []Point{{1, 1}, {0, 0}},
		Mask:      []bool{true, true},
	}

	summary, err := Summary(run)
	biff.AssertNil(err)
	biff.AssertEqual(summary.Id, "r1")
	biff.AssertEqual(summary.BreakAt, -1)
	biff.AssertEqual(summary.FixLog, run.FixLog)
}
