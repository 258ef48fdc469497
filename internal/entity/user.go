package entity

import "github.com/lorekeeper-lab/backend/pkg/enum"

type GlobalRole string

var (
	RoleAdmin = enum.New(GlobalRole("ADMIN"))
	RoleUser  = enum.New(GlobalRole("USER"))
)

type User struct {
	Base
	Username string `gorm:"unique;not null"`
	Email    string
	Role     GlobalRole `gorm:"default:USER"`
}
