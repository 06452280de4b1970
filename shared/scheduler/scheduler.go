package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"weatherwise-shell/shared/config"

	"github.com/robfig/cron/v3"
)

// Probe is the check a Poller runs on each tick.
type Probe interface {
	Name() string
	Check(ctx context.Context) error
}

// ProbeFunc adapts a bare function to the Probe interface.
func ProbeFunc(name string, check func(context.Context) error) Probe {
	return &funcProbe{name: name, check: check}
}

type funcProbe struct {
	name  string
	check func(context.Context) error
}

func (p *funcProbe) Name() string { return p.name }

func (p *funcProbe) Check(ctx context.Context) error { return p.check(ctx) }

// Poller runs a recurring backend probe on a cron schedule so the shell's
// view of the backend stays fresh between user commands.
type Poller struct {
	config *config.HealthPollConfig
	probe  Probe
	cron   *cron.Cron
}

func New(cfg *config.HealthPollConfig, probe Probe) *Poller {
	return &Poller{
		config: cfg,
		probe:  probe,
		// Prevent overlapping runs
		cron: cron.New(cron.WithSeconds(), cron.WithChain(cron.SkipIfStillRunning(cron.DefaultLogger))),
	}
}

// Start registers the probe with the cron runner and blocks until the
// context is cancelled. Probe outcomes are recorded by the backend client,
// so the poller itself only logs scheduling events and errors.
func (p *Poller) Start(ctx context.Context) error {
	_, err := p.cron.AddFunc(p.config.Schedule, func() {
		if err := p.RunOnce(ctx); err != nil {
			log.Printf("Error running scheduled probe %s: %v", p.probe.Name(), err)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to add cron job: %w", err)
	}

	log.Printf("Poller started for %s with schedule: %s", p.probe.Name(), p.config.Schedule)
	p.cron.Start()

	<-ctx.Done()
	log.Printf("Poller stopped for %s", p.probe.Name())
	p.cron.Stop()
	return ctx.Err()
}

// RunOnce executes a single probe immediately, outside the schedule.
func (p *Poller) RunOnce(ctx context.Context) error {
	start := time.Now()

	if err := p.probe.Check(ctx); err != nil {
		return fmt.Errorf("%s probe failed after %v: %w", p.probe.Name(), time.Since(start).Round(time.Millisecond), err)
	}
	return nil
}
