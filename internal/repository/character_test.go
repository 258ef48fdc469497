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

func Test_characterRepository_GetActiveByID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewCharacterRepository()

	character, err := repo.GetActiveByID(ctx, testutil.CharacterA.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.UserPlayer1.ID, character.Owner.ID)
	require.Equal(t, testutil.Location1.Name, character.Location.Name)
	require.Equal(t, testutil.AttributesA.Agility, character.Attributes.Agility)
	require.Len(t, character.Skills, 2)
	require.Equal(t, testutil.SkillFight.Name, character.Skills[0].Skill.Name)

	_, err = repo.GetActiveByID(ctx, testutil.CharacterTrashed.ID)
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func Test_characterRepository_TrashRestore(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewCharacterRepository()

	trashed, err := repo.GetTrashedListByCampaignID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.Len(t, trashed, 1)
	require.Equal(t, testutil.CharacterTrashed.ID, trashed[0].ID)

	require.NoError(t, repo.Trash(ctx, testutil.CharacterC.ID))
	require.True(t, errors.Is(repo.Trash(ctx, testutil.CharacterC.ID), gorm.ErrRecordNotFound))

	active, err := repo.GetActiveListByCampaignID(ctx, testutil.Campaign1.ID)
	require.NoError(t, err)
	require.Len(t, active, 2)

	require.NoError(t, repo.Restore(ctx, testutil.CharacterC.ID))
	require.True(t, errors.Is(repo.Restore(ctx, testutil.CharacterC.ID), gorm.ErrRecordNotFound))

	_, err = repo.GetActiveByID(ctx, testutil.CharacterC.ID)
	require.NoError(t, err)
}

func Test_characterRepository_UpdateByID(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewCharacterRepository()

	require.NoError(t, repo.UpdateByID(ctx, testutil.CharacterA.ID, map[string]any{"nickname": "Magpie"}))
	character, err := repo.GetActiveByID(ctx, testutil.CharacterA.ID)
	require.NoError(t, err)
	require.Equal(t, "Magpie", character.Nickname)
	require.Equal(t, testutil.CharacterA.Firstname, character.Firstname)

	err = repo.UpdateByID(ctx, "40000000-0000-4000-8000-0000000000ff", map[string]any{"nickname": "x"})
	require.True(t, errors.Is(err, gorm.ErrRecordNotFound))
}

func Test_characterRepository_Destroy(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	repo := NewCharacterRepository()

	require.NoError(t, repo.Destroy(ctx, testutil.CharacterA.ID))

	var count int64
	require.NoError(t, xcontext.DB(ctx).Model(&entity.CharacterSkillValue{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, xcontext.DB(ctx).Model(&entity.CharacterAttributes{}).Count(&count).Error)
	require.Zero(t, count)
	require.NoError(t, xcontext.DB(ctx).Unscoped().Model(&entity.Character{}).
		Where("id=?", testutil.CharacterA.ID).Count(&count).Error)
	require.Zero(t, count)

	require.True(t, errors.Is(repo.Destroy(ctx, testutil.CharacterA.ID), gorm.ErrRecordNotFound))
}
