package models

// Address is a saved address owned by a user, optionally scoped to a
// business entity and an API application.
type Address struct {
	Mixin

	FirstName    string `json:"first_name,omitempty"`
	LastName     string `json:"last_name,omitempty"`
	BusinessName string `json:"business_name,omitempty"`

	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`

	Street      string `json:"street,omitempty"`
	StreetLine2 string `json:"street_line_2,omitempty"`
	City        string `json:"city,omitempty"`
	State       string `json:"state,omitempty"`
	PostCode    string `json:"post_code,omitempty"`
	Country     string `json:"country" gorm:"size:2"`

	Lat float64 `json:"lat,omitempty"`
	Lng float64 `json:"lng,omitempty"`

	EntityID string `json:"entity_id,omitempty" gorm:"index;size:64"`

	UserID string `json:"user_id,omitempty" gorm:"index;size:64"`
	User   *User  `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// Name returns the contact name on the address.
func (a *Address) Name() string {
	if a.FirstName == "" || a.LastName == "" {
		return ""
	}
	return a.FirstName + " " + a.LastName
}
