package entity

import (
	"time"

	"github.com/lorekeeper-lab/backend/pkg/enum"
)

type MemberRole string

var (
	MemberRoleMJ     = enum.New(MemberRole("mj"))
	MemberRolePlayer = enum.New(MemberRole("player"))
)

type Campaign struct {
	Base
	Title         string `gorm:"not null"`
	Theme         string
	JoinCode      string `gorm:"unique;not null"`
	CreatedBy     string
	CreatedByUser User `gorm:"foreignKey:CreatedBy"`
}

// CampaignMember has a composite primary key, so a user holds at most one role per campaign.
type CampaignMember struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	CampaignID string   `gorm:"primaryKey"`
	Campaign   Campaign `gorm:"foreignKey:CampaignID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	Role MemberRole `gorm:"not null"`
}
