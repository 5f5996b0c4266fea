package store

import (
	"database/sql"
	"time"

	"github.com/google/uuid"
)

// SessionKind distinguishes tracking sessions from music sessions.
type SessionKind string

const (
	// SessionTracking is a webcam tracking session.
	SessionTracking SessionKind = "tracking"
	// SessionMusic is a generative-music session.
	SessionMusic SessionKind = "music"
)

// Session records the lifetime of one WebSocket session.
type Session struct {
	ID        string
	Kind      SessionKind
	StartedAt time.Time
	EndedAt   sql.NullTime
}

// SessionEvent is one player join or leave within a tracking session.
type SessionEvent struct {
	ID        int64
	SessionID string
	Event     string // "join" or "leave"
	PlayerID  string
	CreatedAt time.Time
}

// SessionRepository provides CRUD operations for sessions and their
// events.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Start inserts a new session and returns it.
func (r *SessionRepository) Start(kind SessionKind) (*Session, error) {
	session := &Session{
		ID:        uuid.New().String(),
		Kind:      kind,
		StartedAt: time.Now(),
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, kind, started_at) VALUES (?, ?, ?)`,
		session.ID, string(session.Kind), session.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// End marks the session as finished.
func (r *SessionRepository) End(id string) error {
	res, err := r.db.Exec(`UPDATE sessions SET ended_at = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Get returns the session with the given ID, or ErrNotFound.
func (r *SessionRepository) Get(id string) (*Session, error) {
	var s Session
	var kind string
	err := r.db.QueryRow(
		`SELECT id, kind, started_at, ended_at FROM sessions WHERE id = ?`, id,
	).Scan(&s.ID, &kind, &s.StartedAt, &s.EndedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	s.Kind = SessionKind(kind)
	return &s, nil
}

// AddEvent records a player join or leave for the session.
func (r *SessionRepository) AddEvent(sessionID, event, playerID string) error {
	_, err := r.db.Exec(
		`INSERT INTO session_events (session_id, event, player_id) VALUES (?, ?, ?)`,
		sessionID, event, playerID,
	)
	return err
}

// Events lists the events of a session in insertion order.
func (r *SessionRepository) Events(sessionID string) ([]SessionEvent, error) {
	rows, err := r.db.Query(
		`SELECT id, session_id, event, player_id, created_at
		 FROM session_events WHERE session_id = ? ORDER BY id`, sessionID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []SessionEvent
	for rows.Next() {
		var e SessionEvent
		if err := rows.Scan(&e.ID, &e.SessionID, &e.Event, &e.PlayerID, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}

	return events, rows.Err()
}
