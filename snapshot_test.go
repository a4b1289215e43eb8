package svcinv

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnapshotSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")

	want := Snapshot{
		Generation: 7,
		Services: Collection{
			{Name: "sshd.service", Description: "OpenSSH server", LoadState: "loaded", ActiveState: "active", SubState: "running", EnabledState: "enabled"},
			{Name: "cups.service", LoadState: "loaded", ActiveState: "inactive", SubState: "dead", EnabledState: EnabledUnknown},
		},
		Err:       ErrRPC,
		UpdatedAt: time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	}
	require.NoError(t, SaveSnapshot(path, want))

	got, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, want.Generation, got.Generation)
	assert.Equal(t, want.Services, got.Services)
	assert.True(t, want.UpdatedAt.Equal(got.UpdatedAt))
	assert.NoError(t, got.Err)
}

func TestLoadSnapshotDropsNonServiceRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	data := `generation: 3
services:
  - name: dbus.service
    active_state: active
  - name: dbus.socket
    active_state: active
  - name: ""
`
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))

	s, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"dbus.service"}, s.Services.Names())
}

func TestLoadSnapshotErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := LoadSnapshot(filepath.Join(dir, "missing.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("services: [unterminated"), 0o644))
	_, err = LoadSnapshot(bad)
	assert.Error(t, err)
}

func TestSaveSnapshotEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "inventory.yaml")
	require.NoError(t, SaveSnapshot(path, Snapshot{}))

	s, err := LoadSnapshot(path)
	require.NoError(t, err)
	assert.NotNil(t, s.Services)
	assert.Empty(t, s.Services)
}
