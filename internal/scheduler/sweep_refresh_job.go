package scheduler

// SweepRefresher recomputes the dashboard's cached entanglement sweep.
type SweepRefresher interface {
	RefreshSweep() error
}

// SweepRefreshJob keeps the dashboard's sweep chart warm so the first
// visitor after a restart is not stuck waiting for a full sweep.
type SweepRefreshJob struct {
	refresher SweepRefresher
}

// NewSweepRefreshJob creates a new sweep refresh job
func NewSweepRefreshJob(refresher SweepRefresher) *SweepRefreshJob {
	return &SweepRefreshJob{refresher: refresher}
}

// Name returns the job name
func (j *SweepRefreshJob) Name() string {
	return "sweep_refresh"
}

// Run recomputes the cached sweep
func (j *SweepRefreshJob) Run() error {
	return j.refresher.RefreshSweep()
}
