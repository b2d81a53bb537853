package store

import (
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"

	"github.com/ehrlich-b/nameswipe/internal/embedding"
)

// LoadVector returns the cached vector for text under model, or nil, nil.
func (s *Store) LoadVector(model, text string) ([]float32, error) {
	var blob []byte
	err := s.db.QueryRow("SELECT vec FROM vectors WHERE model = ? AND text_hash = ?", model, textHash(text)).Scan(&blob)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load vector: %w", err)
	}
	return embedding.BytesAsVec(blob)
}

func (s *Store) SaveVector(model, text string, vec []float32) error {
	_, err := s.db.Exec(`INSERT INTO vectors (model, text_hash, dims, vec) VALUES (?, ?, ?, ?)
		ON CONFLICT(model, text_hash) DO UPDATE SET dims = excluded.dims, vec = excluded.vec`,
		model, textHash(text), len(vec), embedding.VecAsBytes(vec))
	if err != nil {
		return fmt.Errorf("save vector: %w", err)
	}
	return nil
}

// CountVectors reports how many vectors are cached for model.
func (s *Store) CountVectors(model string) (int, error) {
	var n int
	if err := s.db.QueryRow("SELECT COUNT(*) FROM vectors WHERE model = ?", model).Scan(&n); err != nil {
		return 0, fmt.Errorf("count vectors: %w", err)
	}
	return n, nil
}

func textHash(text string) string {
	sum := sha256.Sum256([]byte(text))
	return hex.EncodeToString(sum[:])
}
