package service

import (
	"context"
	"fmt"

	"github.com/go-co-op/gocron/v2"
)

// Run drives the hub and the tick job until ctx is done
func (s *Svc) Run(ctx context.Context) error {
	sched, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("station scheduler: %w", err)
	}
	_, err = sched.NewJob(
		gocron.DurationJob(s.cfg.Tick),
		gocron.NewTask(s.Tick),
		gocron.WithName("station-tick"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		_ = sched.Shutdown()
		return fmt.Errorf("station tick job: %w", err)
	}

	hubDone := make(chan struct{})
	go func() {
		defer close(hubDone)
		s.hub.Run(ctx)
	}()

	s.log.Info().Dur("tick", s.cfg.Tick).Str("name", s.cfg.Name).Msg("station on air")
	sched.Start()

	<-ctx.Done()
	err = sched.Shutdown()
	<-hubDone
	s.log.Info().Msg("station off air")
	return err
}
