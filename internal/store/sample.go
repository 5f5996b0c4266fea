package store

import "database/sql"

// Sample is one entry of the audio loop catalog.
type Sample struct {
	ID   string
	Name string
	URL  string
}

// SampleRepository provides read access to the sample catalog.
type SampleRepository struct {
	db *sql.DB
}

// Samples returns the sample repository for this store.
func (s *Store) Samples() *SampleRepository {
	return &SampleRepository{db: s.db}
}

// List returns all samples in catalog order.
func (r *SampleRepository) List() ([]Sample, error) {
	rows, err := r.db.Query(`SELECT id, name, url FROM samples ORDER BY sort_order`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var samples []Sample
	for rows.Next() {
		var s Sample
		if err := rows.Scan(&s.ID, &s.Name, &s.URL); err != nil {
			return nil, err
		}
		samples = append(samples, s)
	}

	return samples, rows.Err()
}

// Get returns the sample with the given ID, or ErrNotFound.
func (r *SampleRepository) Get(id string) (*Sample, error) {
	var s Sample
	err := r.db.QueryRow(`SELECT id, name, url FROM samples WHERE id = ?`, id).
		Scan(&s.ID, &s.Name, &s.URL)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}
