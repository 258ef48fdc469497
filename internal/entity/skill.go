package entity

import "github.com/lorekeeper-lab/backend/pkg/enum"

type Attribute string

var (
	AttributeStrength = enum.New(Attribute("strength"))
	AttributeAgility  = enum.New(Attribute("agility"))
	AttributeWits     = enum.New(Attribute("wits"))
	AttributeEmpathy  = enum.New(Attribute("empathy"))
)

type Skill struct {
	Base
	Name            string    `gorm:"unique;not null"`
	ParentAttribute Attribute `gorm:"not null"`
}
