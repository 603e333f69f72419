package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lumafold/snapsort/internal/config"
)

// isolate points the user config dir at an empty temp dir so a developer's
// real config file cannot leak into the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })
	err := rootCmd.Execute()
	return buf.String(), err
}

func TestVersionCommand(t *testing.T) {
	isolate(t)
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "snapsort version")
}

func TestRootRequiresSourceAndDest(t *testing.T) {
	isolate(t)
	_, err := execute(t)
	require.Error(t, err)
}

func TestRootOrganizesEndToEnd(t *testing.T) {
	isolate(t)
	src := t.TempDir()
	dest := filepath.Join(t.TempDir(), "organized")
	path := filepath.Join(src, "shot.jpg")
	require.NoError(t, os.WriteFile(path, []byte("pixels"), 0o644))
	stamp := time.Date(2023, time.May, 2, 10, 0, 0, 0, time.Local)
	require.NoError(t, os.Chtimes(path, stamp, stamp))

	_, err := execute(t, "-s", src, "-d", dest, "--color", "never")
	require.NoError(t, err)
	assert.FileExists(t, filepath.Join(dest, "2023", "05", "shot.jpg"))
	assert.FileExists(t, path)
}

func TestRootRejectsDestInsideSource(t *testing.T) {
	isolate(t)
	src := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(src, "a.jpg"), []byte("x"), 0o644))

	_, err := execute(t, "-s", src, "-d", filepath.Join(src, "sorted"), "--color", "never")
	require.Error(t, err)
}

func TestCheckCommandNeedsNoPaths(t *testing.T) {
	isolate(t)
	_, err := execute(t, "check", "--color", "never")
	require.NoError(t, err)
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	file := filepath.Join(dir, "config.toml")
	require.NoError(t, os.WriteFile(file, []byte("workers = 4\ntransfer = \"move\"\n"), 0o644))

	f := rootCmd.PersistentFlags()
	require.NoError(t, f.Set("config", file))
	require.NoError(t, f.Set("source", dir))
	require.NoError(t, f.Set("dest", filepath.Join(dir, "out")))
	require.NoError(t, f.Set("workers", "2"))

	cfg, err := buildConfig(f, false)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Workers, "flag beats file")
	assert.Equal(t, config.TransferMove, cfg.Transfer, "file value survives when flag untouched")
}
