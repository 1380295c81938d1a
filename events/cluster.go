package events

import "github.com/fulldump/telesync/align"

// Cluster is a group of adjacent pixel hits of one device in one trigger.
type Cluster struct {
	Event      int64   `json:"event"`
	ID         uint16  `json:"id"`
	Size       uint16  `json:"size"`
	Charge     float32 `json:"charge"`
	SeedColumn uint16  `json:"seed_column"`
	SeedRow    uint16  `json:"seed_row"`
	MeanColumn float64 `json:"mean_column"`
	MeanRow    float64 `json:"mean_row"`
}

// Hit is the cluster position as seen by the aligner. A zero cluster is a
// virtual hit.
func (c Cluster) Hit() align.Hit {
	return align.Hit{Column: c.MeanColumn, Row: c.MeanRow}
}

// MapClusters places clusters onto a trigger sequence: slot i receives the
// next unused cluster of trigger events[i]. Slots without a cluster stay
// zero and clusters whose trigger has no free slot are dropped.
func MapClusters(events []int64, clusters []Cluster) []Cluster {

	mapped := make([]Cluster, len(events))

	i, j := 0, 0
	for i < len(events) && j < len(clusters) {
		switch e := clusters[j].Event; {
		case e == events[i]:
			mapped[i] = clusters[j]
			i++
			j++
		case e < events[i]:
			j++
		default:
			i++
		}
	}

	return mapped
}

// Hits converts clusters to aligner hits, index by index.
func Hits(clusters []Cluster) []align.Hit {
	hits := make([]align.Hit, len(clusters))
	for i, c := range clusters {
		hits[i] = c.Hit()
	}
	return hits
}
