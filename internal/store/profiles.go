package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ehrlich-b/nameswipe/internal/profile"
	"github.com/google/uuid"
)

// CreateProfile inserts p, assigning an ID and creation time when unset.
// History on p is not stored; use RecordJudgement for that.
func (s *Store) CreateProfile(p *profile.Profile) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	_, err := s.db.Exec(`INSERT INTO profiles (id, name, subjective, objective, possessive, favorite, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Subjective, p.Objective, p.Possessive, p.Favorite, p.CreatedAt.UTC().Format(timeFmt))
	if err != nil {
		return fmt.Errorf("create profile: %w", err)
	}
	return nil
}

// GetProfile loads a profile with its full history. It returns nil, nil when
// no profile has that ID.
func (s *Store) GetProfile(id string) (*profile.Profile, error) {
	p, err := s.getProfileRow(id)
	if err != nil || p == nil {
		return p, err
	}
	if err := s.loadHistory(p); err != nil {
		return nil, err
	}
	return p, nil
}

// FindProfile resolves ref as a full ID, an ID prefix of at least 4
// characters, or a case-insensitive name. Ambiguous matches are an error.
func (s *Store) FindProfile(ref string) (*profile.Profile, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return nil, nil
	}
	if p, err := s.GetProfile(ref); err != nil || p != nil {
		return p, err
	}

	all, err := s.ListProfiles()
	if err != nil {
		return nil, err
	}
	var matches []*profile.Profile
	for _, p := range all {
		if strings.EqualFold(p.Name, ref) || (len(ref) >= 4 && strings.HasPrefix(p.ID, ref)) {
			matches = append(matches, p)
		}
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return matches[0], nil
	default:
		return nil, fmt.Errorf("%q matches %d profiles, use the id", ref, len(matches))
	}
}

// ListProfiles returns every profile, oldest first, with history loaded.
func (s *Store) ListProfiles() ([]*profile.Profile, error) {
	rows, err := s.db.Query(`SELECT id, name, subjective, objective, possessive, favorite, positive_swipes, negative_swipes, created_at
		FROM profiles ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	var profiles []*profile.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	rows.Close()

	for _, p := range profiles {
		if err := s.loadHistory(p); err != nil {
			return nil, err
		}
	}
	return profiles, nil
}

// DeleteProfile removes a profile and its history. Deleting the current
// profile clears the selection.
func (s *Store) DeleteProfile(id string) error {
	if _, err := s.db.Exec("DELETE FROM profiles WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ? AND value = ?", currentProfileKey, id); err != nil {
		return fmt.Errorf("clear current profile: %w", err)
	}
	return s.deleteSetting(pendingKey(id))
}

func (s *Store) SetFavorite(id string, favorite bool) error {
	res, err := s.db.Exec("UPDATE profiles SET favorite = ? WHERE id = ?", favorite, id)
	if err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}
	return mustAffect(res, id)
}

// RecordJudgement appends sample to the profile's accepted or rejected
// history and bumps the matching swipe counter, then returns the updated
// profile.
func (s *Store) RecordJudgement(id, sample string, accepted bool) (*profile.Profile, error) {
	counter := "negative_swipes"
	if accepted {
		counter = "positive_swipes"
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("begin judgement: %w", err)
	}
	res, err := tx.Exec("UPDATE profiles SET "+counter+" = "+counter+" + 1 WHERE id = ?", id)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("bump %s: %w", counter, err)
	}
	if err := mustAffect(res, id); err != nil {
		tx.Rollback()
		return nil, err
	}
	if _, err := tx.Exec(`INSERT INTO judgements (profile_id, sample, accepted, judged_at) VALUES (?, ?, ?, ?)`,
		id, sample, accepted, time.Now().UTC().Format(timeFmt)); err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("insert judgement: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit judgement: %w", err)
	}
	return s.GetProfile(id)
}

func (s *Store) getProfileRow(id string) (*profile.Profile, error) {
	row := s.db.QueryRow(`SELECT id, name, subjective, objective, possessive, favorite, positive_swipes, negative_swipes, created_at
		FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return p, err
}

func (s *Store) loadHistory(p *profile.Profile) error {
	rows, err := s.db.Query("SELECT sample, accepted FROM judgements WHERE profile_id = ? ORDER BY id", p.ID)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}
	defer rows.Close()
	p.Accepted, p.Rejected = nil, nil
	for rows.Next() {
		var sample string
		var accepted bool
		if err := rows.Scan(&sample, &accepted); err != nil {
			return fmt.Errorf("scan judgement: %w", err)
		}
		if accepted {
			p.Accepted = append(p.Accepted, sample)
		} else {
			p.Rejected = append(p.Rejected, sample)
		}
	}
	return rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanProfile(sc scanner) (*profile.Profile, error) {
	p := &profile.Profile{}
	var created string
	err := sc.Scan(&p.ID, &p.Name, &p.Subjective, &p.Objective, &p.Possessive, &p.Favorite,
		&p.PositiveSwipes, &p.NegativeSwipes, &created)
	if err == sql.ErrNoRows {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("scan profile: %w", err)
	}
	p.CreatedAt, err = time.Parse(timeFmt, created)
	if err != nil {
		return nil, fmt.Errorf("parse created_at %q: %w", created, err)
	}
	return p, nil
}

func mustAffect(res sql.Result, id string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("profile %s not found", id)
	}
	return nil
}
