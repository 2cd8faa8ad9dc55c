package user

import "go.uber.org/fx"

// Module exposes the user/preferences service via Fx.
var Module = fx.Options(
	fx.Provide(NewService),
)
