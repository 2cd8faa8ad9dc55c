package notifier

import "go.uber.org/fx"

// Module exposes the notification scheduler via Fx and starts the sweep
// cron with the app lifecycle.
var Module = fx.Options(
	fx.Provide(NewStore),
	fx.Provide(NewEmailSender),
	fx.Provide(NewSMSSender),
	fx.Provide(NewService),
	fx.Invoke(runCron),
)
