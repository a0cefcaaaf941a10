package models

type UserRole string

const (
	RoleSuperAdmin  UserRole = "super-admin"
	RoleAgencyOwner UserRole = "agency-owner"
	RoleStaff       UserRole = "staff"
	RoleClient      UserRole = "client"
)

func (r UserRole) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAgencyOwner, RoleStaff, RoleClient:
		return true
	}
	return false
}

type User struct {
	Base
	ClerkID   string   `gorm:"uniqueIndex;not null" json:"clerk_id"` // identity provider subject
	AgencyID  uint     `gorm:"index;not null" json:"agency_id"`
	Email     string   `gorm:"not null" json:"email"`
	FirstName string   `gorm:"not null" json:"first_name"`
	LastName  string   `gorm:"not null" json:"last_name"`
	Role      UserRole `gorm:"not null" json:"role"`
	AvatarURL *string  `gorm:"column:avatar_url" json:"avatar_url"`
	IsActive  bool     `gorm:"not null" json:"is_active"`

	// Relationships
	Agency *Agency `gorm:"foreignKey:AgencyID" json:"-"`
}

func (User) TableName() string {
	return "users"
}
