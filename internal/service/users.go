package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"

	"aurora/web/internal/models"
	"aurora/web/internal/store"
)

const usersKey = "aurora:users"

var ErrUserNotFound = errors.New("user not found")

// Users manages the account collection. It is the only writer of the
// users blob; the mutex serializes read-modify-write cycles.
type Users struct {
	store store.RecordStore
	mu    sync.Mutex
}

func NewUsers(recordStore store.RecordStore) *Users {
	return &Users{store: recordStore}
}

func (u *Users) load(ctx context.Context) (models.UserCollection, error) {
	raw, err := u.store.Get(ctx, usersKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return models.UserCollection{SchemaVersion: 1}, nil
		}
		return models.UserCollection{}, err
	}

	var col models.UserCollection
	if err := json.Unmarshal(raw, &col); err != nil {
		// Unreadable blob is treated as empty.
		return models.UserCollection{SchemaVersion: 1}, nil
	}
	// A hand-edited blob can carry a rank the site does not know.
	for i := range col.Users {
		if !col.Users[i].Rank.Valid() {
			col.Users[i].Rank = models.RankMember
		}
	}
	return col, nil
}

func (u *Users) save(ctx context.Context, col models.UserCollection) error {
	col.SchemaVersion = 1
	raw, err := json.Marshal(col)
	if err != nil {
		return err
	}
	return u.store.Set(ctx, usersKey, raw)
}

// Create appends a new profile. Email and username uniqueness is
// checked here, under the same lock as the append, so concurrent
// registrations cannot both pass the check.
func (u *Users) Create(ctx context.Context, profile models.UserProfile) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	col, err := u.load(ctx)
	if err != nil {
		return err
	}
	for _, user := range col.Users {
		if strings.EqualFold(user.Email, profile.Email) {
			return ErrEmailTaken
		}
		if strings.EqualFold(user.Username, profile.Username) {
			return ErrUsernameTaken
		}
	}
	col.Users = append(col.Users, profile)
	return u.save(ctx, col)
}

func (u *Users) FindByEmail(ctx context.Context, email string) (models.UserProfile, error) {
	col, err := u.load(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	for _, user := range col.Users {
		if strings.EqualFold(user.Email, email) {
			return user, nil
		}
	}
	return models.UserProfile{}, ErrUserNotFound
}

func (u *Users) FindByUsername(ctx context.Context, username string) (models.UserProfile, error) {
	col, err := u.load(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	for _, user := range col.Users {
		if strings.EqualFold(user.Username, username) {
			return user, nil
		}
	}
	return models.UserProfile{}, ErrUserNotFound
}

func (u *Users) GetByID(ctx context.Context, id string) (models.UserProfile, error) {
	col, err := u.load(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	for _, user := range col.Users {
		if user.ID == id {
			return user, nil
		}
	}
	return models.UserProfile{}, ErrUserNotFound
}

// SetDisplayName updates the profile's display name. Usernames and
// denormalized copies on past submissions stay as they were.
func (u *Users) SetDisplayName(ctx context.Context, id string, displayName string) (models.UserProfile, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	col, err := u.load(ctx)
	if err != nil {
		return models.UserProfile{}, err
	}
	for i := range col.Users {
		if col.Users[i].ID == id {
			col.Users[i].DisplayName = displayName
			if err := u.save(ctx, col); err != nil {
				return models.UserProfile{}, err
			}
			return col.Users[i], nil
		}
	}
	return models.UserProfile{}, ErrUserNotFound
}
