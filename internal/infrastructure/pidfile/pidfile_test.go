package pidfile

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAcquireAndRelease(t *testing.T) {
	p := New(filepath.Join(t.TempDir(), "manoria.pid"))

	require.NoError(t, p.Acquire())
	pid, running := p.Running()
	assert.True(t, running)
	assert.Equal(t, os.Getpid(), pid)

	assert.Error(t, p.Acquire(), "second acquire while this process is alive")

	require.NoError(t, p.Release())
	_, running = p.Running()
	assert.False(t, running)
	assert.NoError(t, p.Release(), "release is idempotent")
}

func TestAcquire_ReplacesStaleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "manoria.pid")
	require.NoError(t, os.WriteFile(path, []byte("not-a-pid\n"), 0o644))
	p := New(path)

	require.NoError(t, p.Acquire())

	pid, err := p.Read()
	require.NoError(t, err)
	assert.Equal(t, os.Getpid(), pid)
}
