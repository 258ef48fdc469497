package entity

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestScoreToStars(t *testing.T) {
	tests := []struct {
		score int
		stars int
	}{
		{score: 0, stars: 0},
		{score: 1, stars: 1},
		{score: 20, stars: 1},
		{score: 21, stars: 2},
		{score: 40, stars: 2},
		{score: 41, stars: 3},
		{score: 60, stars: 3},
		{score: 61, stars: 4},
		{score: 80, stars: 4},
		{score: 81, stars: 5},
		{score: 100, stars: 5},
		{score: -3, stars: 0},
		{score: 150, stars: 5},
	}
	for _, tt := range tests {
		require.Equal(t, tt.stars, ScoreToStars(tt.score), "score %d", tt.score)
	}
}

func TestStarsToScore(t *testing.T) {
	require.Equal(t, []int{0, 20, 40, 60, 80, 100}, []int{
		StarsToScore(0), StarsToScore(1), StarsToScore(2),
		StarsToScore(3), StarsToScore(4), StarsToScore(5),
	})
}

func TestStarsRoundTrip(t *testing.T) {
	for stars := 0; stars <= MaxStars; stars++ {
		require.Equal(t, stars, ScoreToStars(StarsToScore(stars)))
	}

	// Only the canonical values survive score -> stars -> score.
	require.Equal(t, 60, StarsToScore(ScoreToStars(60)))
	require.Equal(t, 60, StarsToScore(ScoreToStars(45)))
}

func TestNormalizeRelationshipType(t *testing.T) {
	require.Equal(t, RelationshipFriend, NormalizeRelationshipType("ami"))
	require.Equal(t, RelationshipEnemy, NormalizeRelationshipType("  Ennemi "))
	require.Equal(t, RelationshipNeutral, NormalizeRelationshipType(""))
	require.Equal(t, RelationshipNeutral, NormalizeRelationshipType("rival"))
}
