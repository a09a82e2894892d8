package models

import (
	"gorm.io/gorm"

	"github.com/emotu/micro-cloud/internal/auth"
)

// Credential is a third party API application identity. It carries a paired
// test/live secret key; the prefix of a presented key selects the keyspace it
// is matched against. Credentials are deactivated rather than deleted.
type Credential struct {
	Base

	Name        string `json:"name" gorm:"not null"`
	Description string `json:"description,omitempty"`

	EntityID string `json:"entity_id,omitempty" gorm:"index;size:64"`
	UserID   string `json:"user_id,omitempty" gorm:"index;size:64"`

	AppID string `json:"app_id" gorm:"uniqueIndex;size:64"`

	TestKey      string `json:"test_key" gorm:"uniqueIndex"`
	TestWebhook  string `json:"test_webhook,omitempty"`
	TestWalletID string `json:"test_wallet_id,omitempty"`

	LiveKey      string `json:"live_key" gorm:"uniqueIndex"`
	LiveWebhook  string `json:"live_webhook,omitempty"`
	LiveWalletID string `json:"live_wallet_id,omitempty"`

	IsActive *bool `json:"is_active" gorm:"default:true"`
}

// BeforeCreate generates the application id and key pair for new credentials.
func (c *Credential) BeforeCreate(tx *gorm.DB) error {
	if err := c.Base.BeforeCreate(tx); err != nil {
		return err
	}
	if c.AppID == "" {
		c.AppID = auth.GenerateID(16)
	}
	if c.TestKey == "" {
		c.TestKey = auth.GenerateSecretKey(false)
	}
	if c.LiveKey == "" {
		c.LiveKey = auth.GenerateSecretKey(true)
	}
	if c.IsActive == nil {
		active := true
		c.IsActive = &active
	}
	return nil
}

// Active reports whether the credential is usable.
func (c *Credential) Active() bool {
	return c.IsActive != nil && *c.IsActive
}

// ResetKeys regenerates the selected secret keys.
func (c *Credential) ResetKeys(testMode, liveMode bool) {
	if testMode {
		c.TestKey = auth.GenerateSecretKey(false)
	}
	if liveMode {
		c.LiveKey = auth.GenerateSecretKey(true)
	}
}

// ToggleActive flips the active state of the credential.
func (c *Credential) ToggleActive() {
	active := !c.Active()
	c.IsActive = &active
}
