// Package identity persists the per-device learner identity: an opaque user
// id used as the progress key and an optional, write-once display name.
package identity

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/abhisek/studybuddy/internal/store"
)

// ErrNameAlreadySet is returned when a display name is written twice.
var ErrNameAlreadySet = errors.New("display name already set")

const userIDPrefix = "user_"

// Store implements chat.Identity over the settings table.
type Store struct {
	settings store.SettingsRepo
}

// New returns an identity store backed by settings.
func New(settings store.SettingsRepo) *Store {
	return &Store{settings: settings}
}

// Name returns the stored display name and whether one is set.
func (s *Store) Name(ctx context.Context) (string, bool, error) {
	name, ok, err := s.settings.Get(ctx, store.SettingDisplayName)
	if err != nil {
		return "", false, err
	}
	if strings.TrimSpace(name) == "" {
		return "", false, nil
	}
	return name, ok, nil
}

// SetName stores the display name. It fails with ErrNameAlreadySet if a
// name exists; use ClearName first to change it.
func (s *Store) SetName(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.New("display name is empty")
	}
	wrote, err := s.settings.SetOnce(ctx, store.SettingDisplayName, name)
	if err != nil {
		return err
	}
	if !wrote {
		return ErrNameAlreadySet
	}
	return nil
}

// ClearName removes the stored display name.
func (s *Store) ClearName(ctx context.Context) error {
	return s.settings.Delete(ctx, store.SettingDisplayName)
}

// UserID returns the device user id, creating it on first use.
func (s *Store) UserID(ctx context.Context) (string, error) {
	id, ok, err := s.settings.Get(ctx, store.SettingUserID)
	if err != nil {
		return "", err
	}
	if ok && id != "" {
		return id, nil
	}

	candidate := userIDPrefix + uuid.NewString()
	if _, err := s.settings.SetOnce(ctx, store.SettingUserID, candidate); err != nil {
		return "", fmt.Errorf("create user id: %w", err)
	}

	// Re-read so a concurrent writer's id wins.
	id, _, err = s.settings.Get(ctx, store.SettingUserID)
	if err != nil {
		return "", err
	}
	return id, nil
}
