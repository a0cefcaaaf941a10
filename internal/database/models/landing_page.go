package models

import (
	"time"

	"gorm.io/datatypes"
)

type LandingPageStatus string

const (
	LandingPageDraft     LandingPageStatus = "draft"
	LandingPagePublished LandingPageStatus = "published"
	LandingPageArchived  LandingPageStatus = "archived"
)

type LandingPage struct {
	Base
	AgencyID        uint              `gorm:"index;not null" json:"agency_id"`
	Title           string            `gorm:"not null" json:"title"`
	Slug            string            `gorm:"uniqueIndex;not null" json:"slug"`
	TemplateID      string            `gorm:"not null" json:"template_id"`
	Content         datatypes.JSONMap `gorm:"not null" json:"content"`
	Status          LandingPageStatus `gorm:"not null" json:"status"`
	CustomDomain    *string           `json:"custom_domain"`
	MetaTitle       *string           `json:"meta_title"`
	MetaDescription *string           `json:"meta_description"`
	PublishedAt     *time.Time        `json:"published_at"`
	CreatedBy       uint              `gorm:"not null" json:"created_by"`

	// Relationships
	Agency  *Agency `gorm:"foreignKey:AgencyID" json:"-"`
	Creator *User   `gorm:"foreignKey:CreatedBy" json:"-"`
}

func (LandingPage) TableName() string {
	return "landing_pages"
}
