package history

import (
	"database/sql"
	"fmt"
	"time"
)

func (s *Store) StartSession(durationSecs int64, resumed bool) (*Session, error) {
	now := time.Now().UTC().Format(time.RFC3339)
	res, err := s.db.Exec(
		`INSERT INTO sessions (duration, resumed, status, started_at)
		 VALUES (?, ?, 'running', ?)`,
		durationSecs, boolToInt(resumed), now,
	)
	if err != nil {
		return nil, fmt.Errorf("start session: %w", err)
	}
	id, _ := res.LastInsertId()
	return s.GetSession(id)
}

func (s *Store) GetSession(id int64) (*Session, error) {
	row := s.db.QueryRow(
		`SELECT id, duration, remaining, resumed, status, started_at, ended_at
		 FROM sessions WHERE id = ?`, id,
	)
	sess, err := scanSession(row)
	if err != nil {
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return sess, nil
}

// FinishSession closes a running session with its terminal status and
// the seconds that were left on the clock.
func (s *Store) FinishSession(id int64, status string, remainingSecs int64) error {
	now := time.Now().UTC().Format(time.RFC3339)
	_, err := s.db.Exec(
		`UPDATE sessions SET status = ?, remaining = ?, ended_at = ? WHERE id = ?`,
		status, remainingSecs, now, id,
	)
	if err != nil {
		return fmt.Errorf("finish session %d: %w", id, err)
	}
	return nil
}

// RecentSessions returns finished sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]Session, error) {
	q := `SELECT id, duration, remaining, resumed, status, started_at, ended_at
	      FROM sessions WHERE status != 'running' ORDER BY started_at DESC`
	args := []any{}
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}

	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []Session
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *sess)
	}
	return sessions, rows.Err()
}

// GetDailyStats aggregates finished sessions per day in [from, to).
// Focus time counts the part of the interval that actually ran, so an
// interrupted session contributes duration - remaining.
func (s *Store) GetDailyStats(from, to time.Time) ([]DailyStat, error) {
	rows, err := s.db.Query(`
		SELECT date(started_at) AS day,
		       SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END),
		       SUM(CASE WHEN status = 'interrupted' THEN 1 ELSE 0 END),
		       COALESCE(SUM(duration - remaining), 0)
		FROM sessions
		WHERE status != 'running'
		  AND started_at >= ? AND started_at < ?
		GROUP BY day
		ORDER BY day`,
		from.Format(time.RFC3339), to.Format(time.RFC3339),
	)
	if err != nil {
		return nil, fmt.Errorf("daily stats: %w", err)
	}
	defer rows.Close()

	var stats []DailyStat
	for rows.Next() {
		var d DailyStat
		if err := rows.Scan(&d.Date, &d.Completed, &d.Interrupted, &d.FocusSeconds); err != nil {
			return nil, err
		}
		stats = append(stats, d)
	}
	return stats, rows.Err()
}

// TotalStats returns lifetime completed count and focus seconds.
func (s *Store) TotalStats() (completed int, focusSeconds int64, err error) {
	err = s.db.QueryRow(`
		SELECT SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END),
		       COALESCE(SUM(duration - remaining), 0)
		FROM sessions WHERE status != 'running'`,
	).Scan(&nullInt{&completed}, &focusSeconds)
	return
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (*Session, error) {
	sess := &Session{}
	var resumed int
	var startedAt string
	var endedAt sql.NullString

	err := row.Scan(&sess.ID, &sess.Duration, &sess.Remaining, &resumed, &sess.Status, &startedAt, &endedAt)
	if err != nil {
		return nil, err
	}
	sess.Resumed = resumed != 0
	sess.StartedAt, _ = time.Parse(time.RFC3339, startedAt)
	if endedAt.Valid {
		t, _ := time.Parse(time.RFC3339, endedAt.String)
		sess.EndedAt = &t
	}
	return sess, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

// nullInt scans a nullable aggregate into an int, treating NULL as 0.
type nullInt struct{ v *int }

func (n *nullInt) Scan(src any) error {
	if src == nil {
		*n.v = 0
		return nil
	}
	switch x := src.(type) {
	case int64:
		*n.v = int(x)
	case int:
		*n.v = x
	default:
		return fmt.Errorf("unexpected type %T for count", src)
	}
	return nil
}
