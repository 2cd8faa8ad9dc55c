package notifier

import (
	"context"

	"github.com/robfig/cron/v3"
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/subtrackr/subtrackr/pkg/config"
)

type cronLogger struct {
	log *zap.SugaredLogger
}

func (l cronLogger) Printf(format string, args ...interface{}) {
	l.log.Infof(format, args...)
}

// runCron schedules the daily due sweep. The schedule comes from config;
// a panicking sweep is recovered and logged instead of killing the process.
func runCron(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *config.Config, svc *Service) {
	c := cron.New(cron.WithChain(cron.Recover(cron.PrintfLogger(cronLogger{log}))))

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_, err := c.AddFunc(cfg.Notifier.SweepSchedule, func() {
				if _, err := svc.RunDueSweep(context.Background()); err != nil {
					log.Errorw("scheduled due sweep failed", "err", err)
				}
			})
			if err != nil {
				return err
			}
			log.Infow("due sweep scheduled", "schedule", cfg.Notifier.SweepSchedule)
			c.Start()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			stopped := c.Stop()
			select {
			case <-stopped.Done():
			case <-ctx.Done():
			}
			return nil
		},
	})
}
