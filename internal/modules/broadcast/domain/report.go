package domain

import "time"

// Progress is a point-in-time view of a running broadcast.
type Progress struct {
	Done    int
	Total   int
	Success int
	Failed  int
}

// Percent reports how far the run has got, 0 to 100.
func (p Progress) Percent() float64 {
	if p.Total == 0 {
		return 0
	}
	return float64(p.Done) / float64(p.Total) * 100
}

// Report summarizes a finished broadcast run. Removed recipients also count
// as failed, so Success+Failed covers every target.
type Report struct {
	RunID    string
	Total    int
	Success  int
	Failed   int
	Removed  int
	Duration time.Duration
}

// SuccessRate reports delivered targets as a percentage, 0 for an empty run.
func (r Report) SuccessRate() float64 {
	if r.Total == 0 {
		return 0
	}
	return float64(r.Success) / float64(r.Total) * 100
}

// Throughput reports successful sends per second, 0 for an instant run.
func (r Report) Throughput() float64 {
	secs := r.Duration.Seconds()
	if secs <= 0 {
		return 0
	}
	return float64(r.Success) / secs
}
