package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"aurora/web/internal/store"
)

func TestVoteIncrementsTally(t *testing.T) {
	t.Parallel()

	svc := NewVoteService(store.NewMemoryStore(), newMemoryCooldowns(), testConfig())
	ctx := context.Background()

	tally, err := svc.Vote(ctx, "user-1", "planetminecraft")
	require.NoError(t, err)
	require.Equal(t, 1, tally.Counts["planetminecraft"])

	// Another user on the same site is unaffected by the first
	// user's cooldown.
	tally, err = svc.Vote(ctx, "user-2", "planetminecraft")
	require.NoError(t, err)
	require.Equal(t, 2, tally.Counts["planetminecraft"])

	statuses, total, err := svc.Status(ctx, "")
	require.NoError(t, err)
	require.Equal(t, 2, total)
	require.Len(t, statuses, 4)
}

func TestVoteCooldownEnforced(t *testing.T) {
	t.Parallel()

	cooldowns := newMemoryCooldowns()
	svc := NewVoteService(store.NewMemoryStore(), cooldowns, testConfig())
	ctx := context.Background()

	_, err := svc.Vote(ctx, "user-1", "planetminecraft")
	require.NoError(t, err)

	_, err = svc.Vote(ctx, "user-1", "planetminecraft")
	var cooldownErr *CooldownError
	require.ErrorAs(t, err, &cooldownErr)
	require.Greater(t, cooldownErr.Remaining, time.Duration(0))

	// A different site is on its own cooldown.
	_, err = svc.Vote(ctx, "user-1", "topminecraftservers")
	require.NoError(t, err)

	// The tally did not move on the rejected vote.
	statuses, total, err := svc.Status(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, 2, total)
	for _, status := range statuses {
		switch status.Site.ID {
		case "planetminecraft", "topminecraftservers":
			require.Equal(t, 1, status.Votes)
			require.Greater(t, status.Remaining, time.Duration(0))
		default:
			require.Zero(t, status.Votes)
			require.Zero(t, status.Remaining)
		}
	}
}

func TestVoteUnknownSite(t *testing.T) {
	t.Parallel()

	svc := NewVoteService(store.NewMemoryStore(), newMemoryCooldowns(), testConfig())

	_, err := svc.Vote(context.Background(), "user-1", "not-a-site")
	require.ErrorIs(t, err, ErrUnknownSite)
}
