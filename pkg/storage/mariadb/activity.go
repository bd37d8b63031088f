package mariadb

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

const activitySchema = `
CREATE TABLE IF NOT EXISTS admin_activity (
	id         BIGINT AUTO_INCREMENT PRIMARY KEY,
	entity     VARCHAR(64)  NOT NULL,
	kind       VARCHAR(16)  NOT NULL,
	title      VARCHAR(255) NOT NULL,
	text       TEXT         NOT NULL,
	created_at DATETIME     NOT NULL,
	INDEX idx_admin_activity_created_at (created_at)
)`

// Activity adalah satu notifikasi yang pernah ditampilkan ke admin.
type Activity struct {
	ID        int64     `json:"id"`
	Entity    string    `json:"entity"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}

// ActivityStore menyimpan log aktivitas console admin.
type ActivityStore struct {
	DB *sql.DB
}

func NewActivityStore(db *sql.DB) *ActivityStore {
	return &ActivityStore{DB: db}
}

// EnsureSchema membuat tabel admin_activity jika belum ada.
func (s *ActivityStore) EnsureSchema(ctx context.Context) error {
	if _, err := s.DB.ExecContext(ctx, activitySchema); err != nil {
		return fmt.Errorf("create admin_activity: %w", err)
	}
	return nil
}

func (s *ActivityStore) Record(ctx context.Context, a Activity) error {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	_, err := s.DB.ExecContext(ctx,
		`INSERT INTO admin_activity (entity, kind, title, text, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		a.Entity, a.Kind, a.Title, a.Text, a.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert admin_activity: %w", err)
	}
	return nil
}

const (
	defaultRecentLimit = 50
	maxRecentLimit     = 500
)

// Recent mengembalikan aktivitas terbaru, opsional difilter per entity.
// Limit <= 0 memakai 50 dan limit di atas 500 dipotong menjadi 500.
func (s *ActivityStore) Recent(ctx context.Context, entity string, limit int) ([]Activity, error) {
	switch {
	case limit <= 0:
		limit = defaultRecentLimit
	case limit > maxRecentLimit:
		limit = maxRecentLimit
	}

	query := `SELECT id, entity, kind, title, text, created_at FROM admin_activity`
	args := []any{}
	if entity != "" {
		query += ` WHERE entity = ?`
		args = append(args, entity)
	}
	query += ` ORDER BY created_at DESC, id DESC LIMIT ?`
	args = append(args, limit)

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query admin_activity: %w", err)
	}
	defer rows.Close()

	activities := []Activity{}
	for rows.Next() {
		var a Activity
		if err := rows.Scan(&a.ID, &a.Entity, &a.Kind, &a.Title, &a.Text, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan admin_activity: %w", err)
		}
		activities = append(activities, a)
	}
	return activities, rows.Err()
}
