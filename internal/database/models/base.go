package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// Document is an open, nullable JSON object. Unlike datatypes.JSONMap it
// keeps SQL NULL as a nil map so "no document" and "{}" stay distinct.
type Document map[string]any

// Scan implements the sql.Scanner interface for reading from database
func (d *Document) Scan(value interface{}) error {
	if value == nil {
		*d = nil
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("Document: expected []byte or string, got %T", value)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("Document: %w", err)
	}
	*d = m
	return nil
}

// Value implements the driver.Valuer interface for writing to database
func (d Document) Value() (driver.Value, error) {
	if d == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]any(d))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (Document) GormDataType() string {
	return "json"
}

func (Document) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "JSONB"
	}
	return "JSON"
}

// Base carries the numeric id and audit timestamps shared by every mutable
// entity. Timestamps are assigned by the repository clock, not the database.
type Base struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}
