package experiments

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWritePlot(t *testing.T) {
	svc := testGameService()
	sweep, err := RunSweep(svc, 5, 128, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), DefaultPlotFilename)
	require.NoError(t, WritePlot(sweep, path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestWritePlotRejectsEmptySweep(t *testing.T) {
	err := WritePlot(&SweepResult{}, filepath.Join(t.TempDir(), "out.png"))
	require.Error(t, err)
}
