package service

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestStatusSnapshotPopulatedOnStartup(t *testing.T) {
	cfg := testConfig()
	svc := NewStatusService(cfg, zerolog.Nop())

	snap := svc.Snapshot()
	require.True(t, snap.Online)
	require.Equal(t, cfg.Status.ServerAddress, snap.Host)
	require.Equal(t, cfg.Status.MaxPlayers, snap.MaxPlayers)
	require.False(t, snap.UpdatedAt.IsZero())
	require.NotEmpty(t, snap.Players)
	require.LessOrEqual(t, len(snap.Players), snap.PlayerCount)

	for _, player := range snap.Players {
		require.NotEmpty(t, player.Name)
		require.Positive(t, player.Ping)
	}
}

func TestStatusRefreshReplacesSnapshot(t *testing.T) {
	svc := NewStatusService(testConfig(), zerolog.Nop())

	before := svc.Snapshot()
	svc.Refresh()
	after := svc.Snapshot()

	require.False(t, after.UpdatedAt.Before(before.UpdatedAt))
	require.NotEmpty(t, after.Players)
}
