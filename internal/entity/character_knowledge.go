package entity

import (
	"database/sql"
	"time"

	"github.com/lorekeeper-lab/backend/pkg/enum"
)

// DisclosableField is a sensitive narrative field of a character that a knowledge grant can
// unlock for a player.
type DisclosableField string

var (
	FieldBiography  = enum.New(DisclosableField("biography"))
	FieldStrengths  = enum.New(DisclosableField("strengths"))
	FieldWeaknesses = enum.New(DisclosableField("weaknesses"))
)

type KnowledgeLevel string

var (
	KnowledgeFull    = enum.New(KnowledgeLevel("full"))
	KnowledgePartial = enum.New(KnowledgeLevel("partial"))
	KnowledgeHint    = enum.New(KnowledgeLevel("hint"))
)

// CharacterKnowledge grants one viewer the right to read one field of one character. The
// composite primary key keeps a single row per (viewer, character, field).
type CharacterKnowledge struct {
	CreatedAt time.Time
	UpdatedAt time.Time

	ViewerID string `gorm:"primaryKey"`
	Viewer   User   `gorm:"foreignKey:ViewerID"`

	CharacterID string    `gorm:"primaryKey"`
	Character   Character `gorm:"foreignKey:CharacterID"`

	Field DisclosableField `gorm:"primaryKey"`
	Level KnowledgeLevel   `gorm:"not null"`
	Notes sql.NullString   `gorm:"type:text"`
}

func (CharacterKnowledge) TableName() string {
	return "character_knowledge"
}
