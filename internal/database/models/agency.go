package models

type Agency struct {
	Base
	Name      string `gorm:"not null" json:"name"`
	Subdomain string `gorm:"uniqueIndex;not null" json:"subdomain"`

	// Branding
	LogoURL        *string `gorm:"column:logo_url" json:"logo_url"`
	FaviconURL     *string `gorm:"column:favicon_url" json:"favicon_url"`
	PrimaryColor   *string `json:"primary_color"`
	SecondaryColor *string `json:"secondary_color"`

	// Outbound mail settings. Stored, never used for delivery here.
	SMTPHost     *string `gorm:"column:smtp_host" json:"smtp_host"`
	SMTPPort     *int    `gorm:"column:smtp_port" json:"smtp_port"`
	SMTPUsername *string `gorm:"column:smtp_username" json:"smtp_username"`
	SMTPPassword *string `gorm:"column:smtp_password" json:"smtp_password"`

	CustomDomain *string `json:"custom_domain"`
}

func (Agency) TableName() string {
	return "agencies"
}
