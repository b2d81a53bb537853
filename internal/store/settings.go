package store

import (
	"database/sql"
	"fmt"

	"github.com/ehrlich-b/nameswipe/internal/profile"
)

const currentProfileKey = "current_profile"

// The sample last shown for a profile, waiting for a judgement.
func pendingKey(profileID string) string { return "pending:" + profileID }

// SetCurrent marks the profile the CLI works with by default.
func (s *Store) SetCurrent(id string) error {
	return s.setSetting(currentProfileKey, id)
}

// Current returns the selected profile, or nil, nil when none is set.
func (s *Store) Current() (*profile.Profile, error) {
	id, err := s.getSetting(currentProfileKey)
	if err != nil || id == "" {
		return nil, err
	}
	return s.GetProfile(id)
}

// SetPending remembers the sample shown to a profile so a later judgement
// can refer to it.
func (s *Store) SetPending(profileID, sample string) error {
	return s.setSetting(pendingKey(profileID), sample)
}

// Pending returns the sample awaiting judgement, or "" when there is none.
func (s *Store) Pending(profileID string) (string, error) {
	return s.getSetting(pendingKey(profileID))
}

func (s *Store) ClearPending(profileID string) error {
	return s.deleteSetting(pendingKey(profileID))
}

func (s *Store) setSetting(key, value string) error {
	_, err := s.db.Exec(`INSERT INTO settings (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`, key, value)
	if err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) getSetting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("get %s: %w", key, err)
	}
	return value, nil
}

func (s *Store) deleteSetting(key string) error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("delete %s: %w", key, err)
	}
	return nil
}
