package models

type DealStage string

const (
	StageLead      DealStage = "lead"
	StageQualified DealStage = "qualified"
	StageProposal  DealStage = "proposal"
	StageWon       DealStage = "won"
	StageLost      DealStage = "lost"
)

// Valid reports whether s is a known pipeline stage. Any stage may follow any
// other; there is no transition table.
func (s DealStage) Valid() bool {
	switch s {
	case StageLead, StageQualified, StageProposal, StageWon, StageLost:
		return true
	}
	return false
}

type Deal struct {
	Base
	AgencyID          uint      `gorm:"index;not null" json:"agency_id"`
	ContactID         uint      `gorm:"index;not null" json:"contact_id"`
	Title             string    `gorm:"not null" json:"title"`
	Description       *string   `json:"description"`
	Value             Money     `gorm:"type:numeric(12,2)" json:"value"`
	Stage             DealStage `gorm:"not null;index" json:"stage"`
	Probability       int       `gorm:"not null" json:"probability"` // 0-100, independent of stage
	ExpectedCloseDate Date      `gorm:"type:date" json:"expected_close_date"`
	AssignedTo        *uint     `gorm:"index" json:"assigned_to"`
	CreatedBy         uint      `gorm:"not null" json:"created_by"`

	// Relationships
	Agency   *Agency  `gorm:"foreignKey:AgencyID" json:"-"`
	Contact  *Contact `gorm:"foreignKey:ContactID" json:"-"`
	Assignee *User    `gorm:"foreignKey:AssignedTo" json:"-"`
	Creator  *User    `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (Deal) TableName() string {
	return "deals"
}
