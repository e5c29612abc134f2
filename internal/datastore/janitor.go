package datastore

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/wonny/trendlens/pkg/logger"
)

// Janitor sweeps a store on a fixed interval, evicting idle datasets.
type Janitor struct {
	cron  *cron.Cron
	store *Store
	ttl   time.Duration
	log   *logger.Logger
}

// NewJanitor schedules a sweep every interval that evicts datasets idle
// for longer than ttl.
func NewJanitor(store *Store, ttl, interval time.Duration, log *logger.Logger) (*Janitor, error) {
	j := &Janitor{
		cron:  cron.New(),
		store: store,
		ttl:   ttl,
		log:   log,
	}

	if _, err := j.cron.AddFunc("@every "+interval.String(), j.sweep); err != nil {
		return nil, fmt.Errorf("failed to schedule dataset sweep: %w", err)
	}
	return j, nil
}

// Start begins sweeping in the background.
func (j *Janitor) Start() {
	j.log.WithField("ttl", j.ttl.String()).Info("Starting dataset janitor")
	j.cron.Start()
}

// Stop halts sweeping and waits for a running sweep to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.log.Info("Dataset janitor stopped")
}

func (j *Janitor) sweep() {
	if n := j.store.EvictExpired(j.ttl); n > 0 {
		j.log.WithField("evicted", n).Debug("Sweep finished")
	}
}
