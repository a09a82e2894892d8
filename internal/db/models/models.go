// Package models defines the persisted resource types exposed through the
// generated CRUD routes.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	// DefaultPerPage is the default number of rows returned per listing call
	DefaultPerPage = 20
)

// Base implements the shared identity and timestamp fields carried by every
// persisted resource. Identifiers are generated on first insert.
type Base struct {
	ID          string    `json:"id" gorm:"primaryKey;size:64"`
	DateCreated time.Time `json:"date_created" gorm:"autoCreateTime:false"`
	LastUpdated time.Time `json:"last_updated" gorm:"autoUpdateTime:false"`
}

// BeforeCreate assigns a generated id and the creation timestamp.
func (b *Base) BeforeCreate(_ *gorm.DB) error {
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if b.DateCreated.IsZero() {
		b.DateCreated = now
	}
	b.LastUpdated = now
	return nil
}

// BeforeSave refreshes the last-updated timestamp on every write.
func (b *Base) BeforeSave(_ *gorm.DB) error {
	b.LastUpdated = time.Now().UTC()
	return nil
}

// Mixin extends Base with the ambient scoping fields shared by resources
// that are owned by an API application and split across test/live modes.
type Mixin struct {
	Base
	AppID    string `json:"app_id,omitempty" gorm:"index;size:64"`
	LiveMode bool   `json:"live_mode"`
}

// StringList is a list of strings persisted as a JSON-encoded column.
type StringList []string

// Value implements driver.Valuer.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		return "[]", nil
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

// Scan implements sql.Scanner.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into StringList", value)
	}
}

// Contains reports whether the list holds the given value.
func (l StringList) Contains(value string) bool {
	for _, item := range l {
		if item == value {
			return true
		}
	}
	return false
}
