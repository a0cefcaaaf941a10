package models

import "time"

type InteractionType string

const (
	InteractionEmail   InteractionType = "email"
	InteractionCall    InteractionType = "call"
	InteractionMeeting InteractionType = "meeting"
	InteractionNote    InteractionType = "note"
	InteractionTask    InteractionType = "task"
)

func (t InteractionType) Valid() bool {
	switch t {
	case InteractionEmail, InteractionCall, InteractionMeeting, InteractionNote, InteractionTask:
		return true
	}
	return false
}

// ContactInteraction is an append-only timeline entry; it has no updated_at.
type ContactInteraction struct {
	ID          uint            `gorm:"primaryKey" json:"id"`
	ContactID   uint            `gorm:"index:idx_interactions_timeline,priority:1;not null" json:"contact_id"`
	AgencyID    uint            `gorm:"index;not null" json:"agency_id"`
	Type        InteractionType `gorm:"not null" json:"type"`
	Title       string          `gorm:"not null" json:"title"`
	Description *string         `json:"description"`
	Metadata    Document        `json:"metadata"`
	CreatedBy   uint            `gorm:"not null" json:"created_by"`
	CreatedAt   time.Time       `gorm:"index:idx_interactions_timeline,priority:2;not null" json:"created_at"`

	// Relationships
	Contact *Contact `gorm:"foreignKey:ContactID" json:"-"`
	Agency  *Agency  `gorm:"foreignKey:AgencyID" json:"-"`
	Creator *User    `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (ContactInteraction) TableName() string {
	return "contact_interactions"
}
