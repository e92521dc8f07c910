package render

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/machine-timeline/internal/domain/machine"
	"github.com/oshokin/machine-timeline/internal/fixture"
	"github.com/oshokin/machine-timeline/internal/service/common"
	"github.com/oshokin/machine-timeline/internal/service/timeline"
)

// TestRun_WritesChart renders a folder to SVG.
func TestRun_WritesChart(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	fixture.WriteDay(t, dir, "20240103", machine.StateAlarm, machine.StateAutoRunning, machine.StateEmpty)
	fixture.WriteDay(t, dir, "20240104", machine.StateSetup, machine.StateFeedHold)

	output := filepath.Join(dir, "week.svg")

	err := Run(t.Context(), &Options{
		Settings: common.Overrides{
			ConfigPath: filepath.Join(dir, "absent.yaml"),
			FolderPath: dir,
			StartDate:  "2024-01-03",
			EndDate:    "2024-01-09",
			Output:     output,
		},
		Title: "Machine state",
	})
	require.NoError(t, err)

	contents, err := os.ReadFile(output)
	require.NoError(t, err)
	require.Contains(t, string(contents), "<svg")
}

// TestRun_EmptyRange fails before anything is drawn.
func TestRun_EmptyRange(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	output := filepath.Join(dir, "week.png")

	err := Run(t.Context(), &Options{
		Settings: common.Overrides{
			ConfigPath: filepath.Join(dir, "absent.yaml"),
			FolderPath: dir,
			StartDate:  "2024-01-03",
			EndDate:    "2024-01-09",
			Output:     output,
		},
	})
	require.ErrorIs(t, err, timeline.ErrEmptyDataset)
	require.NoFileExists(t, output)
}
