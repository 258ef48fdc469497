package entity

import (
	"database/sql"
	"time"
)

const (
	MaxAttributeValue = 5
	MaxSkillLevel     = 5
)

type Character struct {
	Base
	CampaignID sql.NullString `gorm:"index"`
	Campaign   Campaign       `gorm:"foreignKey:CampaignID"`
	LocationID sql.NullString
	Location   Location `gorm:"foreignKey:LocationID"`
	OwnerID    sql.NullString
	Owner      User `gorm:"foreignKey:OwnerID"`

	Firstname string
	Lastname  string
	Nickname  string
	Age       int
	Clan      string

	Biography  string `gorm:"type:text"`
	Strengths  string `gorm:"type:text"`
	Weaknesses string `gorm:"type:text"`

	AvatarURL          string
	TransitionVideoURL string

	IsPlayer bool

	Attributes CharacterAttributes   `gorm:"foreignKey:CharacterID"`
	Skills     []CharacterSkillValue `gorm:"foreignKey:CharacterID"`
}

type CharacterAttributes struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	CharacterID string `gorm:"primaryKey"`
	Strength    int
	Agility     int
	Wits        int
	Empathy     int
}

type CharacterSkillValue struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	CharacterID string `gorm:"primaryKey"`
	SkillID     string `gorm:"primaryKey"`
	Skill       Skill  `gorm:"foreignKey:SkillID"`
	Level       int
}
