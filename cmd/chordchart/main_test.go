package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/benoitkugler/chordchart/canvas"
	"github.com/benoitkugler/chordchart/chartparse"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// copyFixture copies a parser fixture into a temporary directory
func copyFixture(t *testing.T, name string) string {
	data, err := os.ReadFile(filepath.Join("../../chartparse/testdata", name))
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), filepath.Base(name))
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	var stderr bytes.Buffer
	cmd := newRootCmd(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stderr.String(), err
}

func readTexts(t *testing.T, path string) []string {
	c, err := canvas.ReadCanvasFile(path, canvas.StrictErrorMode, nil)
	require.NoError(t, err)
	var out []string
	for _, text := range canvas.ShapesOf[canvas.Text](c.Groups()...) {
		out = append(out, text.Content)
	}
	return out
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "charts/song.svg", outputPath("charts/song.yaml", "svg"))
	assert.Equal(t, "song.png", outputPath("song", "png"))
	assert.Equal(t, "a.b/song.pdf", outputPath("a.b/song.yml", "pdf"))
}

func TestRenderDefaultOutput(t *testing.T) {
	input := copyFixture(t, "measures/collection.yaml")
	logs, err := run(t, "render", input, "--compact")
	require.NoError(t, err)
	assert.Contains(t, logs, "chart rendered")

	output := outputPath(input, "svg")
	assert.Equal(t, []string{"1", "6-", "4", "5+", "7°"}, readTexts(t, output))
}

func TestRenderExplicitOutput(t *testing.T) {
	input := copyFixture(t, "triads/test_sus4.yaml")
	output := filepath.Join(t.TempDir(), "chord.svg")
	_, err := run(t, "render", input, "-o", output, "--diagram", "--log-level", "error")
	require.NoError(t, err)
	assert.Equal(t, []string{"1", "Sus4"}, readTexts(t, output))
}

func TestRenderPNG(t *testing.T) {
	input := copyFixture(t, "lines/repeat.yaml")
	_, err := run(t, "render", input, "--format", "png")
	require.NoError(t, err)

	f, err := os.Open(outputPath(input, "png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 800, img.Bounds().Dx())
}

func TestRenderFromConfigAndEnv(t *testing.T) {
	input := copyFixture(t, "lines/repeat.yaml")
	configFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configFile, []byte("format: pdf\nlog-level: warn\n"), 0o644))

	logs, err := run(t, "render", input, "--config", configFile)
	require.NoError(t, err)
	assert.NotContains(t, logs, "chart rendered") // info is filtered
	content, err := os.ReadFile(outputPath(input, "pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(content, []byte("%PDF")))

	t.Setenv("CHORDCHART_FORMAT", "png")
	_, err = run(t, "render", input)
	require.NoError(t, err)
	_, err = os.Stat(outputPath(input, "png"))
	assert.NoError(t, err)

	// flags win over the environment
	_, err = run(t, "render", input, "-f", "svg")
	require.NoError(t, err)
	_, err = os.Stat(outputPath(input, "svg"))
	assert.NoError(t, err)
}

func TestLenientLineWarns(t *testing.T) {
	input := copyFixture(t, "lines/lenient.yaml")
	logs, err := run(t, "render", input)
	require.NoError(t, err)
	assert.Contains(t, logs, "unknown chord quality")
}

func TestRasterize(t *testing.T) {
	input := copyFixture(t, "lines/repeat.yaml")
	_, err := run(t, "render", input)
	require.NoError(t, err)

	svgPath := outputPath(input, "svg")
	output := filepath.Join(t.TempDir(), "out.png")
	_, err = run(t, "rasterize", svgPath, "-o", output)
	require.NoError(t, err)
	_, err = os.Stat(output)
	assert.NoError(t, err)
}

func TestErrors(t *testing.T) {
	_, err := run(t, "render", filepath.Join(t.TempDir(), "missing.yaml"))
	var notFound *chartparse.NotFoundError
	assert.True(t, errors.As(err, &notFound), "%v", err)

	input := copyFixture(t, "invalid_chords/invalid_quality.yaml")
	_, err = run(t, "render", input)
	var invalidValue *chartparse.InvalidValueError
	assert.True(t, errors.As(err, &invalidValue), "%v", err)

	input = copyFixture(t, "triads/test_major.yaml")
	_, err = run(t, "render", input, "-o", filepath.Join(t.TempDir(), "missing", "out.svg"))
	var saveErr *canvas.SaveError
	assert.True(t, errors.As(err, &saveErr), "%v", err)

	_, err = run(t, "render", input, "--format", "gif")
	assert.Error(t, err)

	_, err = run(t, "render", input, "--log-level", "loud")
	assert.Error(t, err)

	_, err = run(t, "render")
	assert.Error(t, err)
}
