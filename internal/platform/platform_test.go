package platform

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetMode(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no POSIX permission bits")
	}
	path := filepath.Join(t.TempDir(), "f")
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE, 0o600)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, SetMode(f, 0o751))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o751), info.Mode().Perm())
}

func TestSetModeIgnoresTypeBits(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("no POSIX permission bits")
	}
	path := filepath.Join(t.TempDir(), "f")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	require.NoError(t, SetMode(f, os.ModeSymlink|0o640))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.True(t, info.Mode().IsRegular())
	assert.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}

func TestPreallocate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	err = Preallocate(f, 1<<16)
	if err != nil && Supported(err) {
		// Some filesystems (tmpfs on old kernels, overlayfs) refuse fallocate.
		t.Logf("fallocate refused: %v", err)
	}
	require.NoError(t, Preallocate(f, 0))

	info, err := f.Stat()
	require.NoError(t, err)
	assert.Equal(t, int64(0), info.Size())
}

func TestSupported(t *testing.T) {
	assert.False(t, Supported(ErrUnsupported))
	assert.False(t, Supported(fmt.Errorf("wrapped: %w", ErrUnsupported)))
	assert.True(t, Supported(os.ErrPermission))
	assert.True(t, Supported(nil))
}

func TestOSFile(t *testing.T) {
	osFs := afero.NewOsFs()
	f, err := osFs.Create(filepath.Join(t.TempDir(), "f"))
	require.NoError(t, err)
	defer f.Close()

	got, ok := OSFile(f)
	require.True(t, ok)
	assert.Equal(t, f.Name(), got.Name())

	mem := afero.NewMemMapFs()
	mf, err := mem.Create("/f")
	require.NoError(t, err)
	defer mf.Close()

	_, ok = OSFile(mf)
	assert.False(t, ok)
}
