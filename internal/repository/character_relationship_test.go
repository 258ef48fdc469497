package repository

import (
	"errors"
	"testing"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/pkg/testutil"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func Test_characterRelationshipRepository_UpsertMutual(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewCharacterRelationshipRepository(testutil.IDGenerator())

	// C -> A already exists with a score, A -> C does not.
	require.NoError(t, repo.UpsertMutual(ctx, testutil.CharacterA.ID, testutil.CharacterC.ID, entity.RelationshipFriend))

	ac, err := repo.Get(ctx, testutil.CharacterA.ID, testutil.CharacterC.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RelationshipFriend, ac.Type)
	require.Equal(t, 0, ac.AffinityScore)

	ca, err := repo.Get(ctx, testutil.CharacterC.ID, testutil.CharacterA.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RelationshipFriend, ca.Type)
	require.Equal(t, testutil.RelationshipCA.AffinityScore, ca.AffinityScore)
	require.Equal(t, testutil.RelationshipCA.ID, ca.ID)

	// Repeating the call must not duplicate the edges.
	require.NoError(t, repo.UpsertMutual(ctx, testutil.CharacterC.ID, testutil.CharacterA.ID, entity.RelationshipEnemy))

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.CharacterRelationship{}).Count(&count).Error)
	require.Equal(t, int64(2), count)
}

func Test_characterRelationshipRepository_UpsertScore(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewCharacterRelationshipRepository(testutil.IDGenerator())

	require.NoError(t, repo.UpsertScore(ctx, testutil.CharacterA.ID, testutil.CharacterB.ID, 60))

	ab, err := repo.Get(ctx, testutil.CharacterA.ID, testutil.CharacterB.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RelationshipNeutral, ab.Type)
	require.Equal(t, 60, ab.AffinityScore)

	_, err = repo.Get(ctx, testutil.CharacterB.ID, testutil.CharacterA.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// Existing edge keeps its type.
	require.NoError(t, repo.UpsertScore(ctx, testutil.CharacterC.ID, testutil.CharacterA.ID, 150))
	ca, err := repo.Get(ctx, testutil.CharacterC.ID, testutil.CharacterA.ID)
	require.NoError(t, err)
	require.Equal(t, entity.RelationshipEnemy, ca.Type)
	require.Equal(t, entity.MaxAffinityScore, ca.AffinityScore)
}

func Test_characterRelationshipRepository_GetOutgoing(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewCharacterRelationshipRepository(testutil.IDGenerator())

	require.NoError(t, repo.UpsertType(ctx, testutil.CharacterA.ID, testutil.CharacterB.ID, entity.RelationshipNeutral))
	require.NoError(t, repo.UpsertType(ctx, testutil.CharacterA.ID, testutil.CharacterC.ID, entity.RelationshipNeutral))
	require.NoError(t, repo.UpsertScore(ctx, testutil.CharacterA.ID, testutil.CharacterTrashed.ID, 100))

	// B and C tie at 0, B was inserted first.
	edges, err := repo.GetOutgoing(ctx, testutil.CharacterA.ID)
	require.NoError(t, err)
	require.Len(t, edges, 2)
	require.Equal(t, testutil.CharacterB.ID, edges[0].ToCharacterID)
	require.Equal(t, testutil.CharacterB.Nickname, edges[0].ToCharacter.Nickname)
	require.Equal(t, testutil.CharacterC.ID, edges[1].ToCharacterID)

	require.NoError(t, repo.UpsertScore(ctx, testutil.CharacterA.ID, testutil.CharacterC.ID, 40))
	edges, err = repo.GetOutgoing(ctx, testutil.CharacterA.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.CharacterC.ID, edges[0].ToCharacterID)
	require.Equal(t, testutil.CharacterB.ID, edges[1].ToCharacterID)
}

func Test_characterRelationshipRepository_Delete(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewCharacterRelationshipRepository(testutil.IDGenerator())

	require.NoError(t, repo.UpsertMutual(ctx, testutil.CharacterA.ID, testutil.CharacterB.ID, entity.RelationshipFriend))
	require.NoError(t, repo.Delete(ctx, testutil.CharacterA.ID, testutil.CharacterB.ID))
	// Deleting a missing edge is fine.
	require.NoError(t, repo.Delete(ctx, testutil.CharacterA.ID, testutil.CharacterB.ID))

	_, err := repo.Get(ctx, testutil.CharacterA.ID, testutil.CharacterB.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
	_, err = repo.Get(ctx, testutil.CharacterB.ID, testutil.CharacterA.ID)
	require.NoError(t, err)

	require.NoError(t, repo.DeleteByCharacterID(ctx, testutil.CharacterA.ID))
	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.CharacterRelationship{}).Count(&count).Error)
	require.Zero(t, count)
}
