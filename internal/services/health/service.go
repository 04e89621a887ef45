package health

import (
	"context"
	"database/sql"
	"time"

	"resume-analyzer/internal/shared/storage/db"
)

const pingTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	DB *sql.DB
}

// NewService constructs a new health service. A nil database reports as disabled.
func NewService(database *sql.DB) *Service {
	return &Service{DB: database}
}

// Status reports liveness and the database state.
func (s *Service) Status(ctx context.Context) (map[string]any, bool) {
	if s == nil || s.DB == nil {
		return map[string]any{"ok": true, "database": "disabled"}, true
	}
	if err := db.Ping(ctx, s.DB, pingTimeout); err != nil {
		return map[string]any{"ok": false, "database": "down"}, false
	}
	return map[string]any{"ok": true, "database": "up"}, true
}
