package store

// runMigrations executes all database migrations and seeds the default
// sample catalog.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Samples table - the loop catalog served to the frontend
		`CREATE TABLE IF NOT EXISTS samples (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			url TEXT NOT NULL,
			sort_order INTEGER NOT NULL DEFAULT 0
		)`,

		// Sessions table - one row per tracking or music session
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			kind TEXT NOT NULL CHECK(kind IN ('tracking', 'music')),
			started_at DATETIME DEFAULT CURRENT_TIMESTAMP,
			ended_at DATETIME
		)`,

		// Session events table - player join/leave history per session
		`CREATE TABLE IF NOT EXISTS session_events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			event TEXT NOT NULL CHECK(event IN ('join', 'leave')),
			player_id TEXT NOT NULL,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		)`,

		`CREATE INDEX IF NOT EXISTS idx_session_events_session_id ON session_events(session_id)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return s.seedSamples()
}

// seedSamples inserts the default sample catalog on first run.
func (s *Store) seedSamples() error {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM samples`).Scan(&count); err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []Sample{
		{ID: "drums", Name: "Drums Loop", URL: "/static/samples/drums.mp3"},
		{ID: "bass", Name: "Bass Loop", URL: "/static/samples/bass.mp3"},
		{ID: "synth", Name: "Synth Pad", URL: "/static/samples/synth.mp3"},
		{ID: "fx", Name: "FX Riser", URL: "/static/samples/fx.mp3"},
		{ID: "melody", Name: "Melody", URL: "/static/samples/melody.mp3"},
	}

	for i, sample := range defaults {
		_, err := s.db.Exec(
			`INSERT INTO samples (id, name, url, sort_order) VALUES (?, ?, ?, ?)`,
			sample.ID, sample.Name, sample.URL, i,
		)
		if err != nil {
			return err
		}
	}

	return nil
}
