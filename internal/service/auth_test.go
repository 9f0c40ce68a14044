package service

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

func newAuthService(t *testing.T) (*AuthService, *Users) {
	t.Helper()
	users := NewUsers(store.NewMemoryStore())
	return NewAuthService(users, NewStoreVerifier(users), testConfig(), zerolog.Nop()), users
}

func validRegistration() RegisterInput {
	return RegisterInput{
		Username:        "Steve_Builder",
		Email:           "steve@example.com",
		Password:        "hunter2hunter2",
		ConfirmPassword: "hunter2hunter2",
		AcceptedTerms:   true,
	}
}

func TestRegisterThenReadBack(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)
	ctx := context.Background()

	result, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)
	require.NotEmpty(t, result.Token)
	require.Equal(t, "Steve_Builder", result.User.Username)
	require.Equal(t, "steve@example.com", result.User.Email)
	require.Equal(t, models.RankMember, result.User.Rank)
	require.Empty(t, result.User.PasswordHash)

	profile, err := svc.GetProfile(ctx, result.User.ID)
	require.NoError(t, err)
	require.Equal(t, "Steve_Builder", profile.Username)
	require.Equal(t, "steve@example.com", profile.Email)
	require.Equal(t, models.RankMember, profile.Rank)
}

func TestRegisterValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)
	ctx := context.Background()

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantErr error
	}{
		{"password mismatch", func(in *RegisterInput) { in.ConfirmPassword = "different" }, ErrPasswordMismatch},
		{"password too short", func(in *RegisterInput) { in.Password = "short"; in.ConfirmPassword = "short" }, ErrPasswordTooShort},
		{"terms not accepted", func(in *RegisterInput) { in.AcceptedTerms = false }, ErrTermsNotAccepted},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validRegistration()
			tt.mutate(&input)
			_, err := svc.Register(ctx, input)
			require.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	dup := validRegistration()
	_, err = svc.Register(ctx, dup)
	require.ErrorIs(t, err, ErrEmailTaken)

	dup = validRegistration()
	dup.Email = "other@example.com"
	_, err = svc.Register(ctx, dup)
	require.ErrorIs(t, err, ErrUsernameTaken)
}

func TestRegisterConcurrentSameEmail(t *testing.T) {
	t.Parallel()

	svc, users := newAuthService(t)
	ctx := context.Background()

	const attempts = 8
	results := make(chan error, attempts)
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			input := validRegistration()
			input.Username = fmt.Sprintf("Racer_%d", i)
			_, err := svc.Register(ctx, input)
			results <- err
		}(i)
	}
	wg.Wait()
	close(results)

	registered := 0
	for err := range results {
		if err == nil {
			registered++
		} else {
			require.ErrorIs(t, err, ErrEmailTaken)
		}
	}
	require.Equal(t, 1, registered)

	// Exactly one profile holds the contested address.
	profile, err := users.FindByEmail(ctx, "steve@example.com")
	require.NoError(t, err)
	require.Equal(t, "steve@example.com", profile.Email)
}

func TestUnknownRankReadsAsMember(t *testing.T) {
	t.Parallel()

	users := NewUsers(store.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, users.Create(ctx, models.UserProfile{
		ID:       "user-1",
		Email:    "steve@example.com",
		Username: "Steve_Builder",
		Rank:     models.Rank("Hacker"),
	}))

	profile, err := users.GetByID(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, models.RankMember, profile.Rank)
}

func TestLogin(t *testing.T) {
	t.Parallel()

	svc, _ := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, validRegistration())
	require.NoError(t, err)

	result, err := svc.Login(ctx, "Steve@Example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.Equal(t, "Steve_Builder", result.User.Username)

	_, err = svc.Login(ctx, "steve@example.com", "wrong password")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	// Unknown account reads the same as a wrong password.
	_, err = svc.Login(ctx, "nobody@example.com", "hunter2hunter2")
	require.ErrorIs(t, err, ErrInvalidCredentials)
}
