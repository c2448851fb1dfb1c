package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/tempo/internal/calendar"
	"github.com/alexanderramin/tempo/internal/domain"
)

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// notFound maps sql.ErrNoRows to a wrapped domain.ErrNotFound.
func notFound(err error, what string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s %w", what, domain.ErrNotFound)
	}
	return fmt.Errorf("scanning %s: %w", what, err)
}

// parseDate parses a stored YYYY-MM-DD column into local midnight.
func parseDate(s, column string) (time.Time, error) {
	t, err := time.ParseInLocation(calendar.DateLayout, s, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// parseTimestamp parses a stored RFC3339 column.
func parseTimestamp(s, column string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t, nil
}

// nullableString converts a *string to a value suitable for SQLite storage.
func nullableString(s *string) any {
	if s == nil || *s == "" {
		return nil
	}
	return *s
}

// stringPtr converts a sql.NullString into a *string.
func stringPtr(s sql.NullString) *string {
	if !s.Valid || s.String == "" {
		return nil
	}
	v := s.String
	return &v
}

func timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// checkAffected returns a wrapped ErrNotFound when an UPDATE or DELETE
// matched no rows.
func checkAffected(res sql.Result, what string) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%s %w", what, domain.ErrNotFound)
	}
	return nil
}
