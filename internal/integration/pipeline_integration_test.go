package integration

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/oshokin/machine-timeline/internal/publisher"
	"github.com/oshokin/machine-timeline/internal/repository/snapshot"
	"github.com/oshokin/machine-timeline/internal/service/common"
	"github.com/oshokin/machine-timeline/internal/service/export"
	"github.com/oshokin/machine-timeline/internal/service/publish"
	"github.com/oshokin/machine-timeline/internal/service/render"
)

// TestPipeline_RemoteSnapshotAndPublish renders from a live server, snapshots the
// same data and publishes it, checking every path sees the same dataset.
func TestPipeline_RemoteSnapshotAndPublish(t *testing.T) {
	t.Parallel()

	folder := t.TempDir()
	writeWeek(t, folder)

	addr := reservePort(t)
	cfgPath := writeSettings(t, folder, addr)

	stop := startGRPC(t, cfgPath, addr)
	defer stop()

	ctx := context.Background()
	out := t.TempDir()

	chartPath := filepath.Join(out, "remote.png")
	require.NoError(t, render.Run(ctx, &render.Options{
		Settings: common.Overrides{ConfigPath: cfgPath, Output: chartPath},
		Origin:   common.Origin{Remote: true},
	}))

	info, err := os.Stat(chartPath)
	require.NoError(t, err)
	require.Positive(t, info.Size())

	snapshotPath := filepath.Join(out, "week.json")
	require.NoError(t, export.Run(ctx, &export.Options{
		Settings: common.Overrides{ConfigPath: cfgPath},
		Origin:   common.Origin{Remote: true},
		Format:   export.FormatJSON,
		Output:   snapshotPath,
	}))

	ds, err := snapshot.NewFileRepository(snapshotPath).Load(ctx)
	require.NoError(t, err)
	require.Len(t, ds.Timelines, 3)

	svgPath := filepath.Join(out, "snapshot.svg")
	require.NoError(t, render.Run(ctx, &render.Options{
		Settings: common.Overrides{ConfigPath: cfgPath, Output: svgPath},
		Origin:   common.Origin{Snapshot: snapshotPath},
	}))
	require.FileExists(t, svgPath)

	fake := publisher.NewFakePublisher("")
	require.NoError(t, publish.Run(ctx, &publish.Options{
		Settings: common.Overrides{ConfigPath: cfgPath},
		Origin:   common.Origin{Snapshot: snapshotPath},
		Connect: func(_ context.Context, opts publisher.Options) (publisher.Publisher, error) {
			fake.Prefix = opts.Topic
			return fake, nil
		},
	}))
	require.Len(t, fake.Messages, 3)
	require.Equal(t, "machines/timeline/2024-01-05", fake.Messages[2].Topic)
}
