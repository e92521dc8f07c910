package integration

import (
	"context"
	"net"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	api "github.com/oshokin/machine-timeline/internal/api/grpc/timeline"
	"github.com/oshokin/machine-timeline/internal/config"
	"github.com/oshokin/machine-timeline/internal/domain/machine"
	"github.com/oshokin/machine-timeline/internal/fixture"
	"github.com/oshokin/machine-timeline/internal/service/common"
	"github.com/oshokin/machine-timeline/internal/service/server"
)

// writeWeek fills folder with three days of samples and one broken file.
func writeWeek(t *testing.T, folder string) {
	t.Helper()

	fixture.WriteDay(t, folder, "20240103",
		machine.StateSetup, machine.StateAutoRunning, machine.StateAutoRunning, machine.StateFeedHold)
	fixture.WriteDay(t, folder, "20240104", machine.StateAlarm, machine.StateEmpty)
	fixture.WriteDay(t, folder, "20240105", machine.StateAutoRunning)
	fixture.WriteFile(t, folder, "20240106.csv", "ATMD_ALARM,ATMD_MEM\n0,1\n")
	fixture.WriteFile(t, folder, "notes.txt", "ignored")
}

// writeSettings saves a settings file for folder and the first week of January 2024.
func writeSettings(t *testing.T, folder, addr string) string {
	t.Helper()

	cfgPath := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, config.Save(cfgPath, &config.Config{
		FolderPath:    folder,
		StartDate:     "2024-01-01",
		EndDate:       "2024-01-07",
		ServerAddress: addr,
		Timeout:       5 * time.Second,
	}))

	return cfgPath
}

// startGRPC starts the timeline server on addr. Returns a stop function to gracefully shutdown the server.
func startGRPC(t *testing.T, cfgPath, addr string) (stop func()) {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())

	go func() {
		options := &server.Options{
			Settings:      common.Overrides{ConfigPath: cfgPath},
			ListenAddress: addr,
		}

		_ = server.Run(ctx, options) //nolint:errcheck // The test fails on the client side if the server does not start.
	}()

	// Wait briefly for server to start listening.
	time.Sleep(150 * time.Millisecond)

	return func() {
		cancel()
		time.Sleep(100 * time.Millisecond)
	}
}

// reservePort returns address on a free TCP port and closes it.
func reservePort(t *testing.T) string {
	t.Helper()

	l, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	addr := l.Addr().String()
	_ = l.Close()

	return addr
}

// TestGRPC_Roundtrip starts the real server and exercises both RPCs.
func TestGRPC_Roundtrip(t *testing.T) {
	t.Parallel()

	folder := t.TempDir()
	writeWeek(t, folder)

	addr := reservePort(t)

	stop := startGRPC(t, writeSettings(t, folder, addr), addr)
	defer stop()

	ctx := context.Background()

	c, err := api.Dial(ctx, addr, api.WithCallTimeout(3*time.Second))
	require.NoError(t, err)

	defer func() {
		_ = c.Close()
	}()

	from := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.January, 7, 0, 0, 0, 0, time.UTC)

	ds, err := c.Timeline(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, ds.Timelines, 3)
	require.Equal(t, "2024-01-03", ds.Timelines[0].Resource)
	require.Len(t, ds.Timelines[0].Intervals, 4)
	require.Equal(t, machine.StateFeedHold, ds.Timelines[0].Intervals[3].State)

	// A day file added after startup is served without restart.
	fixture.WriteDay(t, folder, "20240107", machine.StateSetup)

	ds, err = c.Timeline(ctx, from, to)
	require.NoError(t, err)
	require.Len(t, ds.Timelines, 4)

	_, err = c.Timeline(ctx, from.AddDate(1, 0, 0), to.AddDate(1, 0, 0))
	require.Equal(t, codes.NotFound, status.Code(err))

	row := machine.Row{Tape: true, SMZ: true, INP: true, AFC: true, OP: true}

	state, err := c.Classify(ctx, row.Values())
	require.NoError(t, err)
	require.Equal(t, machine.StateFeedHold, state)
}
