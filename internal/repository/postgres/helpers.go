package postgres

import (
	"database/sql"
	"strings"
	"time"

	"github.com/google/uuid"
)

func nullString(ptr *string) sql.NullString {
	if ptr == nil {
		return sql.NullString{Valid: false}
	}
	v := strings.TrimSpace(*ptr)
	if v == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: v, Valid: true}
}

func nullFloat(ptr *float64) sql.NullFloat64 {
	if ptr == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *ptr, Valid: true}
}

func nullUUID(ptr *uuid.UUID) uuid.NullUUID {
	if ptr == nil || *ptr == uuid.Nil {
		return uuid.NullUUID{}
	}
	return uuid.NullUUID{UUID: *ptr, Valid: true}
}

func nullTime(ptr *time.Time) sql.NullTime {
	if ptr == nil || ptr.IsZero() {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *ptr, Valid: true}
}

// expectAffected maps a zero-row write onto sql.ErrNoRows.
func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
