package models

// Status is a shared dictionary record for resource state names.
type Status struct {
	Base

	Name        string `json:"name" gorm:"uniqueIndex;not null"`
	Description string `json:"description,omitempty"`
}

// BusinessType is a country-specific kind of business registration.
type BusinessType struct {
	Base

	Code        string `json:"code" gorm:"index;not null"`
	Name        string `json:"name" gorm:"not null"`
	Country     string `json:"country" gorm:"size:2"`
	Description string `json:"description,omitempty"`
}
