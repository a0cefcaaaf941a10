package models

import "gorm.io/datatypes"

type Contact struct {
	Base
	AgencyID     uint                        `gorm:"index;not null" json:"agency_id"`
	FirstName    string                      `gorm:"not null" json:"first_name"`
	LastName     string                      `gorm:"not null" json:"last_name"`
	Email        *string                     `json:"email"`
	Phone        *string                     `json:"phone"`
	Company      *string                     `json:"company"`
	Position     *string                     `json:"position"`
	Tags         datatypes.JSONSlice[string] `gorm:"not null" json:"tags"`
	CustomFields datatypes.JSONMap           `gorm:"not null" json:"custom_fields"`
	CreatedBy    uint                        `gorm:"index;not null" json:"created_by"`

	// Relationships
	Agency  *Agency `gorm:"foreignKey:AgencyID" json:"-"`
	Creator *User   `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Contact) TableName() string {
	return "contacts"
}
