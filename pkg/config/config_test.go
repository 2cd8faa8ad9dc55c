package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", "/nonexistent/config.yaml")

	c, err := New()
	require.NoError(t, err)

	require.Equal(t, EnvDev, c.Env)
	require.Equal(t, "0.0.0.0", c.Server.Host)
	require.Equal(t, 8888, c.Server.Port)
	require.Contains(t, c.Database.DSN, "subtrackr")
	require.Equal(t, ":9091", c.MetricsAddr)
	require.Equal(t, 587, c.SMTP.Port)
	require.Equal(t, "0 9 * * *", c.Notifier.SweepSchedule)
	require.Equal(t, 15*time.Second, c.Notifier.SendTimeout)
}

func TestNew_EnvOverrides(t *testing.T) {
	t.Setenv("APP_CONFIG_FILE", "/nonexistent/config.yaml")
	t.Setenv("APP_SERVER_PORT", "9000")
	t.Setenv("APP_NOTIFIER_SEND_TIMEOUT", "5s")

	c, err := New()
	require.NoError(t, err)
	require.Equal(t, 9000, c.Server.Port)
	require.Equal(t, 5*time.Second, c.Notifier.SendTimeout)
}
