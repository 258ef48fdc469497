package entity

import (
	"database/sql"
	"strings"

	"github.com/lorekeeper-lab/backend/pkg/enum"
)

type RelationshipType string

var (
	RelationshipFriend  = enum.New(RelationshipType("ami"))
	RelationshipEnemy   = enum.New(RelationshipType("ennemi"))
	RelationshipNeutral = enum.New(RelationshipType("neutral"))
)

const (
	MinAffinityScore = 0
	MaxAffinityScore = 100
	MaxStars         = 5

	scorePerStar = MaxAffinityScore / MaxStars
)

// CharacterRelationship is a directed edge: "from knows to". The reverse direction is a
// separate row with its own score.
type CharacterRelationship struct {
	SnowFlakeBase

	FromCharacterID string    `gorm:"uniqueIndex:idx_relationship_edge;not null"`
	FromCharacter   Character `gorm:"foreignKey:FromCharacterID"`
	ToCharacterID   string    `gorm:"uniqueIndex:idx_relationship_edge;not null"`
	ToCharacter     Character `gorm:"foreignKey:ToCharacterID"`

	Type          RelationshipType `gorm:"not null;default:neutral"`
	AffinityScore int              `gorm:"not null;default:0"`
	Notes         sql.NullString   `gorm:"type:text"`
}

func (r CharacterRelationship) Stars() int {
	return ScoreToStars(r.AffinityScore)
}

// NormalizeRelationshipType maps free-form input to a known type. Blank or unknown values
// become neutral rather than being rejected.
func NormalizeRelationshipType(s string) RelationshipType {
	t, err := enum.ToEnum[RelationshipType](strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return RelationshipNeutral
	}

	return t
}

func ClampAffinityScore(score int) int {
	return max(MinAffinityScore, min(MaxAffinityScore, score))
}

// ScoreToStars buckets a score: 0 is its own bucket, then every 20 points is one star
// (1..20 is one star, 81..100 is five).
func ScoreToStars(score int) int {
	score = ClampAffinityScore(score)
	if score == 0 {
		return 0
	}

	return (score + scorePerStar - 1) / scorePerStar
}

// StarsToScore returns the upper bound of the stars bucket.
func StarsToScore(stars int) int {
	return max(0, min(MaxStars, stars)) * scorePerStar
}
