package main

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runRoadnet(t *testing.T, args ...string) error {
	t.Helper()
	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(io.Discard)
	cmd.SetErr(io.Discard)
	return cmd.ExecuteContext(context.Background())
}

func TestConvert(t *testing.T) {
	t.Run("Flags", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "crossing.net.xml")
		err := runRoadnet(t, "convert",
			"--file", filepath.Join("..", "..", "testdata", "crossing.osm"),
			"--out", out,
			"--geojson", filepath.Join(dir, "crossing.geojson"),
			"--csv", filepath.Join(dir, "crossing.csv"),
			"--no-internal-links",
		)
		require.NoError(t, err)
		content, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(content), `<junction id="1" type="traffic_light"`)
		assert.NotContains(t, string(content), `function="internal"`)
		for _, fname := range []string{"crossing.geojson", "crossing_edges.csv", "crossing_junctions.csv"} {
			assert.FileExists(t, filepath.Join(dir, fname))
		}
	})

	t.Run("Configuration file", func(t *testing.T) {
		dir := t.TempDir()
		out := filepath.Join(dir, "crossing.net.xml")
		conf := filepath.Join(dir, "roadnet.toml")
		content := "[input]\nfile = \"" + filepath.ToSlash(filepath.Join("..", "..", "testdata", "crossing.osm")) + "\"\nhighways = [\"primary\"]\n\n[output]\nnet = \"" + filepath.ToSlash(out) + "\"\n"
		require.NoError(t, os.WriteFile(conf, []byte(content), 0o644))
		require.NoError(t, runRoadnet(t, "convert", "--config", conf, "--no-names"))
		written, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.NotContains(t, string(written), `name=`)
		assert.NotContains(t, string(written), `id="200_0"`)
	})

	t.Run("No input file", func(t *testing.T) {
		assert.Error(t, runRoadnet(t, "convert"))
	})
}
