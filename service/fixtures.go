package service

// HitPoint is a deterministic, collision free position for index i.
func HitPoint(i int) Point {
	return Point{1 + float64((i*7)%97), 1 + float64((i*13)%89)}
}

// ShiftedJob builds n single hit triggers where the secondary device recorded
// a spurious empty record at index k, delaying everything after it by one.
func ShiftedJob(name string, n, k int) *Job {

	job := &Job{
		Name:      name,
		Triggers:  make([]int64, n),
		Reference: make([]Point, n),
		Secondary: make([]Point, n),
	}
	for i := 0; i < n; i++ {
		job.Triggers[i] = int64(i)
		job.Reference[i] = HitPoint(i)
		switch {
		case i < k:
			job.Secondary[i] = HitPoint(i)
		case i > k:
			job.Secondary[i] = HitPoint(i - 1)
		}
	}

	return job
}
