package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fulldump/telesync/align"
)

// Align runs one job and stores the resulting run in the dataset.
func (s *Service) Align(dataset string, job *Job) (*Run, error) {

	d, err := s.GetDataset(dataset)
	if err != nil {
		return nil, err
	}

	run, err := s.execute(job)
	if err != nil {
		return nil, err
	}

	_, err = d.Collection.Insert(run)
	if err != nil {
		return nil, fmt.Errorf("store run: %w", err)
	}

	return run, nil
}

// AlignBatch runs jobs on a pool of workers. Results keep the order of jobs.
// Jobs that fail leave a nil run; the error of the first failing job is
// returned once every worker is done.
func (s *Service) AlignBatch(dataset string, jobs []*Job, workers int) ([]*Run, error) {

	d, err := s.GetDataset(dataset)
	if err != nil {
		return nil, err
	}

	if workers <= 0 {
		workers = s.workers
	}
	workers = min(workers, len(jobs))

	runs := make([]*Run, len(jobs))
	errs := make([]error, len(jobs))

	queue := make(chan int)
	wg := &sync.WaitGroup{}
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range queue {
				run, err := s.execute(jobs[i])
				if err == nil {
					_, err = d.Collection.Insert(run)
				}
				if err != nil {
					errs[i] = fmt.Errorf("job %d: %w", i, err)
					continue
				}
				runs[i] = run
			}
		}()
	}

	for i := range jobs {
		queue <- i
	}
	close(queue)
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return runs, err
		}
	}

	return runs, nil
}

func (s *Service) execute(job *Job) (*Run, error) {

	if job == nil {
		return nil, fmt.Errorf("%w: missing job", ErrorInvalidJob)
	}

	params := s.defaults
	if job.Params != nil {
		params = *job.Params
	}

	n := len(job.Triggers)
	streams := align.Streams{
		Triggers:   job.Triggers,
		Reference:  make([]align.Hit, len(job.Reference)),
		Secondary:  make([]align.Hit, len(job.Secondary)),
		Correlated: job.Correlated,
	}
	for i, p := range job.Reference {
		streams.Reference[i] = p.Hit()
	}
	for i, p := range job.Secondary {
		streams.Secondary[i] = p.Hit()
	}
	if streams.Correlated == nil {
		streams.Correlated = make([]bool, n)
		for i := range streams.Correlated {
			streams.Correlated[i] = true
		}
	} else {
		streams.Correlated = append([]bool{}, job.Correlated...)
	}

	t0 := time.Now()
	result, err := align.Align(streams, params, align.WithLogger(s.logger))
	if err != nil {
		return nil, err
	}
	s.logger.Printf("job '%s': %d hits, %d fixes, %s in %s", job.Name, n, result.Fixes, result.Outcome, time.Since(t0))

	run := &Run{
		Id:        uuid.NewString(),
		Name:      job.Name,
		Created:   time.Now().UnixNano(),
		NHits:     n,
		Fixes:     result.Fixes,
		Outcome:   result.Outcome,
		BreakAt:   result.BreakAt,
		Params:    params,
		FixLog:    result.Applied,
		Secondary: make([]Point, n),
		Mask:      streams.Correlated,
	}
	for i, h := range streams.Secondary {
		run.Secondary[i] = PointOf(h)
	}
	for _, c := range streams.Correlated {
		if c {
			run.Correlated++
		}
	}

	return run, nil
}
