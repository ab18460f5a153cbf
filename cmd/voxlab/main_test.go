package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/voxlab"
	"github.com/katalvlaran/voxlab/labeling"
	"github.com/katalvlaran/voxlab/raster"
	"github.com/katalvlaran/voxlab/rasterio"
)

// writeBlobs saves a 6×4 image with three blobs and returns its path.
func writeBlobs(t *testing.T, dir string) string {
	t.Helper()
	r, err := raster.FromRows([][]int{
		{0, 9, 0, 0, 0, 0},
		{0, 9, 0, 4, 4, 0},
		{0, 0, 0, 0, 0, 0},
		{7, 0, 0, 0, 0, 0},
	}, raster.Gray8)
	require.NoError(t, err)
	path := filepath.Join(dir, "blobs.png")
	require.NoError(t, rasterio.WriteImage(path, r))
	return path
}

func TestRun_Label(t *testing.T) {
	dir := t.TempDir()
	in := writeBlobs(t, dir)
	out := filepath.Join(dir, "labels.vxl")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"label", "-conn", "4", "-format", "8", in, out}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())
	assert.Contains(t, stdout.String(), "label: label 24 samples, 3 labels")

	labels, err := rasterio.LoadRaw(out)
	require.NoError(t, err)
	assert.Equal(t, raster.Gray8, labels.Format())
	assert.Equal(t, 3, labeling.Count(labels))
}

func TestRun_Attribute(t *testing.T) {
	dir := t.TempDir()
	in := writeBlobs(t, dir)
	out := filepath.Join(dir, "open.png")

	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"attribute", "-threshold", "2", "-conn", "4", in, out}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	open, err := rasterio.ReadImage(out)
	require.NoError(t, err)
	assert.Equal(t, float32(9), open.At(1, 0, 0))
	assert.Equal(t, float32(4), open.At(3, 1, 0))
	assert.Equal(t, float32(0), open.At(0, 3, 0))
}

func TestRun_Batch(t *testing.T) {
	dir := t.TempDir()
	in := writeBlobs(t, dir)
	config := filepath.Join(dir, "jobs.toml")
	require.NoError(t, os.WriteFile(config, []byte(`
workers = 2

[logging]
level = "error"

[[job]]
name = "maxima"
op = "extrema"
input = "`+in+`"
output = "`+filepath.Join(dir, "maxima.png")+`"
connectivity = 4

[[job]]
name = "tophat"
op = "attribute"
kind = "tophat"
measure = "area"
threshold = 2.0
input = "`+in+`"
output = "`+filepath.Join(dir, "tophat.vxl")+`"
`), 0o644))

	var stdout, stderr bytes.Buffer
	require.NoError(t, run(context.Background(), []string{"batch", "-config", config}, &stdout, &stderr), stderr.String())
	assert.Contains(t, stdout.String(), "maxima: extrema 24 samples, 5 extremum samples")
	assert.Contains(t, stdout.String(), "2 job(s)")

	hat, err := rasterio.LoadRaw(filepath.Join(dir, "tophat.vxl"))
	require.NoError(t, err)
	assert.Equal(t, float32(7), hat.At(0, 3, 0))
	assert.Equal(t, float32(0), hat.At(1, 0, 0))
}

func TestRun_Errors(t *testing.T) {
	dir := t.TempDir()
	in := writeBlobs(t, dir)
	var stdout, stderr bytes.Buffer

	assert.Error(t, run(context.Background(), []string{"sharpen", in, "x.png"}, &stdout, &stderr))
	assert.Error(t, run(context.Background(), []string{"label", in}, &stdout, &stderr))

	err := run(context.Background(), []string{"label", "-conn", "6", in, filepath.Join(dir, "x.png")}, &stdout, &stderr)
	assert.ErrorIs(t, err, voxlab.ErrConfiguration)

	err = run(context.Background(), []string{"attribute", in, filepath.Join(dir, "x.png")}, &stdout, &stderr)
	assert.ErrorIs(t, err, voxlab.ErrConfiguration, "missing threshold")

	stdout.Reset()
	require.NoError(t, run(context.Background(), nil, &stdout, &stderr))
	assert.Contains(t, stdout.String(), "Usage: voxlab")
}

func TestLoadJobs_Validation(t *testing.T) {
	dir := t.TempDir()
	write := func(name, body string) string {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
		return path
	}

	_, err := loadJobs(write("typo.toml", "[[job]]\nop = \"label\"\ninput = \"a.png\"\noutput = \"b.png\"\nconectivity = 4\n"))
	assert.ErrorIs(t, err, voxlab.ErrConfiguration)
	assert.Contains(t, err.Error(), "conectivity")

	_, err = loadJobs(write("empty.toml", "workers = 3\n"))
	assert.ErrorIs(t, err, voxlab.ErrConfiguration)

	_, err = loadJobs(write("noout.toml", "[[job]]\nop = \"label\"\ninput = \"a.png\"\n"))
	assert.ErrorIs(t, err, voxlab.ErrConfiguration)

	jf, err := loadJobs(write("ok.toml", "[[job]]\nop = \"label\"\ninput = \"a.png\"\noutput = \"b.png\"\n"))
	require.NoError(t, err)
	assert.Equal(t, "job-1", jf.Jobs[0].Name)
}
