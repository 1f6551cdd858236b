package configuration

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv_FallsBackToGoModRoot(t *testing.T) {
	tmp := t.TempDir()

	requireWriteFile(t, filepath.Join(tmp, "go.mod"), "module example.com/test\n\ngo 1.22\n")
	requireWriteFile(t, filepath.Join(tmp, ".env.local"), "OFFICELIFE_TEST_ENV_LOAD=ok\n")

	sub := filepath.Join(tmp, "modules", "hrm")
	require.NoError(t, os.MkdirAll(sub, 0o755))

	origWd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { _ = os.Chdir(origWd) })
	require.NoError(t, os.Chdir(sub))

	_ = os.Unsetenv("OFFICELIFE_TEST_ENV_LOAD")

	n, err := LoadEnv([]string{".env", ".env.local"})
	require.NoError(t, err)
	require.Equal(t, 1, n)
	require.Equal(t, "ok", os.Getenv("OFFICELIFE_TEST_ENV_LOAD"))
}

func TestConfiguration_Defaults(t *testing.T) {
	c := &Configuration{}
	require.NoError(t, env.Parse(c))
	require.NoError(t, c.validate())

	require.Equal(t, "memory", c.Audit.QueueBackend)
	require.Equal(t, 25, c.Audit.MaxAttempts)
	require.Equal(t, 1024, c.Audit.BufferSize)
	require.Equal(t, 60*time.Second, c.Audit.MaxBackoff)
	require.Equal(t, time.UTC, c.Location())
	require.Equal(t, logrus.ErrorLevel, c.LogrusLogLevel())
}

func TestConfiguration_RejectsUnknownQueueBackend(t *testing.T) {
	t.Setenv("AUDIT_QUEUE_BACKEND", "kafka")

	c := &Configuration{}
	require.NoError(t, env.Parse(c))
	err := c.validate()
	require.Error(t, err)
	require.Contains(t, err.Error(), "AUDIT_QUEUE_BACKEND")
}

func TestConfiguration_AuthzPathsTogether(t *testing.T) {
	opts := AuthzOptions{ModelPath: "model.conf"}
	require.Error(t, opts.Validate())

	opts.PolicyPath = "policy.csv"
	require.NoError(t, opts.Validate())
}

func TestConfiguration_Timezone(t *testing.T) {
	t.Setenv("TZ_NAME", "Europe/Paris")

	c := &Configuration{}
	require.NoError(t, env.Parse(c))
	require.NoError(t, c.validate())
	require.Equal(t, "Europe/Paris", c.Location().String())
}

func requireWriteFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}
