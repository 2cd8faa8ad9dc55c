package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/subtrackr/subtrackr/internal/app/api/server"
	"github.com/subtrackr/subtrackr/internal/app/service/analysis"
	"github.com/subtrackr/subtrackr/internal/app/service/notifier"
	"github.com/subtrackr/subtrackr/internal/app/service/subscription"
	"github.com/subtrackr/subtrackr/internal/app/service/user"
	"github.com/subtrackr/subtrackr/internal/platform/db"
	"github.com/subtrackr/subtrackr/pkg/config"
	"github.com/subtrackr/subtrackr/pkg/logger"
)

const (
	DefaultStartTimeout = 15 * time.Second
	DefaultStopTimeout  = 10 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	server.Module,
	analysis.Module,
	subscription.Module,
	user.Module,
	notifier.Module,
)
