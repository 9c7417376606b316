package entity

import "github.com/reelify-app/backend/pkg/enum"

type GlobalRole string

var (
	RoleUser  = enum.New(GlobalRole("user"))
	RoleAdmin = enum.New(GlobalRole("admin"))
)

var GlobalAdminRoles = []GlobalRole{RoleAdmin}

type User struct {
	Base
	Username string `gorm:"unique"`
	Email    string `gorm:"unique"`

	// HashedPassword is empty for accounts created through an OAuth2
	// provider.
	HashedPassword string

	AvatarURL  string
	Role       GlobalRole `gorm:"default:user"`
	IsActive   bool       `gorm:"default:true"`
	IsVerified bool
}
