package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/devbush/photoccrop/internal/domain"
)

func TestRunProcess(t *testing.T) {
	app := newTestApp(t, "")
	dir := t.TempDir()
	input := filepath.Join(dir, "portrait.png")
	output := filepath.Join(dir, "out", "badge.png")
	writePhoto(t, input, 80, 60)

	var out bytes.Buffer
	err := runProcess(context.Background(), app, &out, input, output, 50)

	require.NoError(t, err)
	assert.FileExists(t, output)
	assert.Contains(t, out.String(), "[1/2] Reading photo... ✓ 80x60 png")
	assert.Contains(t, out.String(), "✓ Complete!")
	assert.Contains(t, out.String(), "Size: 50x50")
}

func TestRunProcess_MissingInput(t *testing.T) {
	app := newTestApp(t, "")
	dir := t.TempDir()

	var out bytes.Buffer
	err := runProcess(context.Background(), app, &out, filepath.Join(dir, "nope.jpg"), filepath.Join(dir, "o.png"), 50)

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInputNotFound))
	assert.Contains(t, out.String(), "does not exist")
	assert.NoFileExists(t, filepath.Join(dir, "o.png"))
}

func TestRunProcess_InvalidSize(t *testing.T) {
	app := newTestApp(t, "")
	dir := t.TempDir()
	input := filepath.Join(dir, "portrait.png")
	writePhoto(t, input, 20, 20)

	err := runProcess(context.Background(), app, &bytes.Buffer{}, input, filepath.Join(dir, "o.png"), -1)

	assert.True(t, errors.Is(err, domain.ErrInvalidDimension))
}

func TestRunBatch(t *testing.T) {
	app := newTestApp(t, "")
	dir := t.TempDir()
	in := filepath.Join(dir, "photos")
	writePhoto(t, filepath.Join(in, "a.png"), 40, 30)
	writePhoto(t, filepath.Join(in, "b.png"), 30, 40)
	require.NoError(t, os.WriteFile(filepath.Join(in, "broken.jpg"), []byte("not a jpeg"), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(in, "notes.txt"), []byte("hi"), 0644))
	outDir := filepath.Join(dir, "circles")

	var out bytes.Buffer
	err := runBatch(context.Background(), app, &out, in, outDir, 24, 2)

	require.NoError(t, err, "item failures do not fail the batch")
	assert.FileExists(t, filepath.Join(outDir, "a_c.png"))
	assert.FileExists(t, filepath.Join(outDir, "b_c.png"))
	assert.NoFileExists(t, filepath.Join(outDir, "broken_c.png"))
	assert.Contains(t, out.String(), "[3/3]")
	assert.Contains(t, out.String(), "2 succeeded, 1 failed")
	assert.Contains(t, out.String(), "✗ broken.jpg")
}

func TestRunBatch_Fatal(t *testing.T) {
	app := newTestApp(t, "")
	empty := t.TempDir()

	var out bytes.Buffer
	err := runBatch(context.Background(), app, &out, empty, filepath.Join(empty, "out"), 24, 1)

	assert.True(t, errors.Is(err, domain.ErrNoImagesFound))
	assert.NotContains(t, out.String(), "Batch complete")

	err = runBatch(context.Background(), app, &out, filepath.Join(empty, "missing"), filepath.Join(empty, "out"), 24, 1)
	assert.True(t, errors.Is(err, domain.ErrInputDirNotFound))
}

func TestRunBatch_Cancelled(t *testing.T) {
	app := newTestApp(t, "")
	dir := t.TempDir()
	writePhoto(t, filepath.Join(dir, "a.png"), 10, 10)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := runBatch(ctx, app, &out, dir, filepath.Join(dir, "out"), 24, 1)

	assert.True(t, errors.Is(err, domain.ErrCancelled))
	assert.Contains(t, out.String(), "Batch cancelled after 0 of 1 files")
}

func TestRunInfo(t *testing.T) {
	newTestApp(t, "")
	path := filepath.Join(t.TempDir(), "p.png")
	writePhoto(t, path, 64, 48)

	var out bytes.Buffer
	require.NoError(t, runInfo(context.Background(), &out, path, false))
	assert.Contains(t, out.String(), "64x48")
	assert.Contains(t, out.String(), "png")

	out.Reset()
	require.NoError(t, runInfo(context.Background(), &out, path, true))
	var info domain.ImageInfo
	require.NoError(t, json.Unmarshal(out.Bytes(), &info))
	assert.Equal(t, 64, info.Width)
	assert.Equal(t, 48, info.Height)
}

func TestRootCmd_Examples(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"examples"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "photoccrop batch -i ./photos -o ./circles")
}

func TestRootCmd_ProcessRequiresFlags(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"process", "-i", "a.jpg"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestConfigCmd_InitShowPath(t *testing.T) {
	t.Cleanup(func() {
		configFlag = ""
		configForceFlag = false
	})
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")

	run := func(args ...string) (string, error) {
		cmd := NewRootCmd()
		var out bytes.Buffer
		cmd.SetOut(&out)
		cmd.SetErr(&bytes.Buffer{})
		cmd.SetArgs(append([]string{"--config", path}, args...))
		err := cmd.Execute()
		return out.String(), err
	}

	out, err := run("config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote "+path)
	assert.FileExists(t, path)

	_, err = run("config", "init")
	assert.Error(t, err, "init must not overwrite without --force")

	_, err = run("config", "init", "--force")
	assert.NoError(t, err)

	out, err = run("config", "show")
	require.NoError(t, err)
	assert.Contains(t, out, "size: 300")
	assert.Contains(t, out, "filter: lanczos")

	out, err = run("config", "path")
	require.NoError(t, err)
	assert.Equal(t, path+"\n", out)
}
