package domain

import (
	"context"
	"testing"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/testutil"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func stars(s int) *int {
	return &s
}

func knownOf(t *testing.T, ctx context.Context, d RelationshipDomain, characterID string) map[string]model.KnownCharacter {
	resp, err := d.GetKnown(ctx, &model.GetKnownCharactersRequest{
		CampaignID:  testutil.Campaign1.ID,
		CharacterID: characterID,
	})
	require.NoError(t, err)

	result := map[string]model.KnownCharacter{}
	for _, known := range resp.Characters {
		result[known.ID] = known
	}

	return result
}

func Test_relationshipDomain_AddKnown(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.UserMJ.ID)
	testutil.CreateFixtureDb(ctx)
	d := newTestDomains().relationship

	_, err := d.AddKnown(ctx, &model.AddKnownCharacterRequest{
		CampaignID:      testutil.Campaign1.ID,
		FromCharacterID: testutil.CharacterA.ID,
		ToCharacterID:   testutil.CharacterB.ID,
		Type:            "ami",
	})
	require.NoError(t, err)

	knownByA := knownOf(t, ctx, d, testutil.CharacterA.ID)
	require.Contains(t, knownByA, testutil.CharacterB.ID)
	require.Equal(t, "ami", knownByA[testutil.CharacterB.ID].Type)
	require.Equal(t, 0, knownByA[testutil.CharacterB.ID].AffinityScore)
	require.Equal(t, testutil.CharacterB.Nickname, knownByA[testutil.CharacterB.ID].Nickname)

	knownByB := knownOf(t, ctx, d, testutil.CharacterB.ID)
	require.Contains(t, knownByB, testutil.CharacterA.ID)
	require.Equal(t, "ami", knownByB[testutil.CharacterA.ID].Type)
	require.Equal(t, 0, knownByB[testutil.CharacterA.ID].AffinityScore)
	require.Equal(t, 0, knownByB[testutil.CharacterA.ID].RelationshipStars)
}

func Test_relationshipDomain_AddKnown_KeepsScore(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.UserAdmin.ID)
	testutil.CreateFixtureDb(ctx)
	d := newTestDomains().relationship

	// C -> A already has a score of 70, unknown types fall back to neutral.
	_, err := d.AddKnown(ctx, &model.AddKnownCharacterRequest{
		CampaignID:      testutil.Campaign1.ID,
		FromCharacterID: testutil.CharacterA.ID,
		ToCharacterID:   testutil.CharacterC.ID,
		Type:            "rival",
	})
	require.NoError(t, err)

	knownByC := knownOf(t, ctx, d, testutil.CharacterC.ID)
	require.Equal(t, "neutral", knownByC[testutil.CharacterA.ID].Type)
	require.Equal(t, 70, knownByC[testutil.CharacterA.ID].AffinityScore)
	require.Equal(t, 4, knownByC[testutil.CharacterA.ID].RelationshipStars)
}

func Test_relationshipDomain_AddKnown_Errors(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDomains().relationship

	tests := []struct {
		name    string
		userID  string
		req     *model.AddKnownCharacterRequest
		wantErr error
	}{
		{
			name: "no principal",
			req: &model.AddKnownCharacterRequest{
				CampaignID:      testutil.Campaign1.ID,
				FromCharacterID: testutil.CharacterA.ID,
				ToCharacterID:   testutil.CharacterB.ID,
			},
			wantErr: errorx.New(errorx.Unauthenticated, "Unauthenticated"),
		},
		{
			name:   "player is forbidden",
			userID: testutil.UserPlayer1.ID,
			req: &model.AddKnownCharacterRequest{
				CampaignID:      testutil.Campaign1.ID,
				FromCharacterID: testutil.CharacterA.ID,
				ToCharacterID:   testutil.CharacterB.ID,
			},
			wantErr: errorx.New(errorx.PermissionDenied, "Admin/MJ only"),
		},
		{
			name:   "missing campaign id",
			userID: testutil.UserMJ.ID,
			req: &model.AddKnownCharacterRequest{
				FromCharacterID: testutil.CharacterA.ID,
				ToCharacterID:   testutil.CharacterB.ID,
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid campaign_id"),
		},
		{
			name:   "self reference",
			userID: testutil.UserMJ.ID,
			req: &model.AddKnownCharacterRequest{
				CampaignID:      testutil.Campaign1.ID,
				FromCharacterID: testutil.CharacterA.ID,
				ToCharacterID:   testutil.CharacterA.ID,
			},
			wantErr: errorx.New(errorx.BadRequest, "A character cannot know itself"),
		},
		{
			name:   "malformed id",
			userID: testutil.UserMJ.ID,
			req: &model.AddKnownCharacterRequest{
				CampaignID:      testutil.Campaign1.ID,
				FromCharacterID: testutil.CharacterA.ID,
				ToCharacterID:   "not-an-id",
			},
			wantErr: errorx.New(errorx.BadRequest, "Invalid toCharacterId"),
		},
		{
			name:   "trashed character",
			userID: testutil.UserMJ.ID,
			req: &model.AddKnownCharacterRequest{
				CampaignID:      testutil.Campaign1.ID,
				FromCharacterID: testutil.CharacterA.ID,
				ToCharacterID:   testutil.CharacterTrashed.ID,
			},
			wantErr: errorx.New(errorx.NotFound, "Character not found"),
		},
		{
			name:   "character of another campaign",
			userID: testutil.UserAdmin.ID,
			req: &model.AddKnownCharacterRequest{
				CampaignID:      testutil.Campaign1.ID,
				FromCharacterID: testutil.CharacterA.ID,
				ToCharacterID:   testutil.CharacterOther.ID,
			},
			wantErr: errorx.New(errorx.NotFound, "Character not found"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.AddKnown(testutil.WithUserID(ctx, tt.userID), tt.req)
			require.Error(t, err)
			require.Equal(t, tt.wantErr, err)

			var count int64
			require.NoError(t, xcontext.DB(ctx).Model(&entity.CharacterRelationship{}).Count(&count).Error)
			require.Equal(t, int64(1), count)
		})
	}
}

func Test_relationshipDomain_RemoveKnown(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.UserMJ.ID)
	testutil.CreateFixtureDb(ctx)
	d := newTestDomains().relationship

	_, err := d.AddKnown(ctx, &model.AddKnownCharacterRequest{
		CampaignID:      testutil.Campaign1.ID,
		FromCharacterID: testutil.CharacterA.ID,
		ToCharacterID:   testutil.CharacterB.ID,
		Type:            "ennemi",
	})
	require.NoError(t, err)

	req := &model.RemoveKnownCharacterRequest{
		CampaignID:      testutil.Campaign1.ID,
		FromCharacterID: testutil.CharacterA.ID,
		ToCharacterID:   testutil.CharacterB.ID,
	}
	_, err = d.RemoveKnown(ctx, req)
	require.NoError(t, err)

	require.NotContains(t, knownOf(t, ctx, d, testutil.CharacterA.ID), testutil.CharacterB.ID)
	require.Contains(t, knownOf(t, ctx, d, testutil.CharacterB.ID), testutil.CharacterA.ID)

	// The edge is already gone, this is still a success.
	_, err = d.RemoveKnown(ctx, req)
	require.NoError(t, err)

	_, err = d.RemoveKnown(ctx, &model.RemoveKnownCharacterRequest{
		CampaignID:      testutil.Campaign1.ID,
		FromCharacterID: testutil.CharacterA.ID,
		ToCharacterID:   "40000000-0000-4000-8000-0000000000ff",
	})
	require.Equal(t, errorx.New(errorx.NotFound, "Character not found"), err)
}

func Test_relationshipDomain_UpsertStars(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.UserMJ.ID)
	testutil.CreateFixtureDb(ctx)
	domains := newTestDomains()
	d := domains.relationship

	_, err := d.AddKnown(ctx, &model.AddKnownCharacterRequest{
		CampaignID:      testutil.Campaign1.ID,
		FromCharacterID: testutil.CharacterA.ID,
		ToCharacterID:   testutil.CharacterB.ID,
		Type:            "ami",
	})
	require.NoError(t, err)

	resp, err := d.UpsertStars(ctx, &model.UpsertRelationshipStarsRequest{
		CampaignID:        testutil.Campaign1.ID,
		FromCharacterID:   testutil.CharacterA.ID,
		ToCharacterID:     testutil.CharacterB.ID,
		RelationshipStars: stars(3),
	})
	require.NoError(t, err)
	require.Equal(t, model.Relationship{
		FromCharacterID:   testutil.CharacterA.ID,
		ToCharacterID:     testutil.CharacterB.ID,
		Type:              "ami",
		AffinityScore:     60,
		RelationshipStars: 3,
	}, resp.Relationship)

	known := knownOf(t, ctx, d, testutil.CharacterA.ID)[testutil.CharacterB.ID]
	require.Equal(t, 60, known.AffinityScore)
	require.Equal(t, 3, known.RelationshipStars)

	// The reverse edge is untouched.
	reverse, err := domains.relationshipRepo.Get(ctx, testutil.CharacterB.ID, testutil.CharacterA.ID)
	require.NoError(t, err)
	require.Equal(t, 0, reverse.AffinityScore)

	resp, err = d.UpsertStars(ctx, &model.UpsertRelationshipStarsRequest{
		CampaignID:        testutil.Campaign1.ID,
		FromCharacterID:   testutil.CharacterA.ID,
		ToCharacterID:     testutil.CharacterB.ID,
		RelationshipStars: stars(0),
	})
	require.NoError(t, err)
	require.Equal(t, 0, resp.AffinityScore)
	require.Equal(t, 0, resp.RelationshipStars)
	require.Equal(t, "ami", resp.Type)
}

func Test_relationshipDomain_UpsertStars_CreatesNeutralEdge(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.UserAdmin.ID)
	testutil.CreateFixtureDb(ctx)
	domains := newTestDomains()

	resp, err := domains.relationship.UpsertStars(ctx, &model.UpsertRelationshipStarsRequest{
		CampaignID:        testutil.Campaign1.ID,
		FromCharacterID:   testutil.CharacterB.ID,
		ToCharacterID:     testutil.CharacterC.ID,
		RelationshipStars: stars(5),
	})
	require.NoError(t, err)
	require.Equal(t, "neutral", resp.Type)
	require.Equal(t, 100, resp.AffinityScore)

	_, err = domains.relationshipRepo.Get(ctx, testutil.CharacterC.ID, testutil.CharacterB.ID)
	require.Error(t, err)
}

func Test_relationshipDomain_UpsertStars_Errors(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)
	d := newTestDomains().relationship

	tests := []struct {
		name    string
		userID  string
		stars   *int
		wantErr error
	}{
		{
			name:    "player is forbidden",
			userID:  testutil.UserPlayer1.ID,
			stars:   stars(3),
			wantErr: errorx.New(errorx.PermissionDenied, "Admin/MJ only"),
		},
		{
			name:    "too many stars",
			userID:  testutil.UserMJ.ID,
			stars:   stars(6),
			wantErr: errorx.New(errorx.BadRequest, "relationshipStars must be between 0 and 5"),
		},
		{
			name:    "negative stars",
			userID:  testutil.UserMJ.ID,
			stars:   stars(-1),
			wantErr: errorx.New(errorx.BadRequest, "relationshipStars must be between 0 and 5"),
		},
		{
			name:    "missing stars",
			userID:  testutil.UserMJ.ID,
			wantErr: errorx.New(errorx.BadRequest, "relationshipStars must be between 0 and 5"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := d.UpsertStars(testutil.WithUserID(ctx, tt.userID), &model.UpsertRelationshipStarsRequest{
				CampaignID:        testutil.Campaign1.ID,
				FromCharacterID:   testutil.CharacterC.ID,
				ToCharacterID:     testutil.CharacterA.ID,
				RelationshipStars: tt.stars,
			})
			require.Equal(t, tt.wantErr, err)

			edge, err := newTestDomains().relationshipRepo.Get(ctx, testutil.CharacterC.ID, testutil.CharacterA.ID)
			require.NoError(t, err)
			require.Equal(t, testutil.RelationshipCA.AffinityScore, edge.AffinityScore)
		})
	}
}

func Test_relationshipDomain_GetCandidates(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.UserMJ.ID)
	testutil.CreateFixtureDb(ctx)
	d := newTestDomains().relationship

	resp, err := d.GetCandidates(ctx, &model.GetRelationshipCandidatesRequest{
		CampaignID:  testutil.Campaign1.ID,
		CharacterID: testutil.CharacterC.ID,
	})
	require.NoError(t, err)
	// C already knows A, the trashed character and the other campaign are out of scope.
	require.Len(t, resp.Characters, 1)
	require.Equal(t, testutil.CharacterB.ID, resp.Characters[0].ID)

	resp, err = d.GetCandidates(ctx, &model.GetRelationshipCandidatesRequest{
		CampaignID:  testutil.Campaign1.ID,
		CharacterID: testutil.CharacterA.ID,
	})
	require.NoError(t, err)
	require.Len(t, resp.Characters, 2)
	for _, card := range resp.Characters {
		require.NotEqual(t, testutil.CharacterA.ID, card.ID)
	}
}

func Test_relationshipDomain_GetKnown_PlayerForbidden(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.UserPlayer2.ID)
	testutil.CreateFixtureDb(ctx)
	d := newTestDomains().relationship

	_, err := d.GetKnown(ctx, &model.GetKnownCharactersRequest{
		CampaignID:  testutil.Campaign1.ID,
		CharacterID: testutil.CharacterC.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Admin/MJ only"), err)

	_, err = d.GetCandidates(ctx, &model.GetRelationshipCandidatesRequest{
		CampaignID:  testutil.Campaign1.ID,
		CharacterID: testutil.CharacterC.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Admin/MJ only"), err)

	_, err = d.RemoveKnown(ctx, &model.RemoveKnownCharacterRequest{
		CampaignID:      testutil.Campaign1.ID,
		FromCharacterID: testutil.CharacterC.ID,
		ToCharacterID:   testutil.CharacterA.ID,
	})
	require.Equal(t, errorx.New(errorx.PermissionDenied, "Admin/MJ only"), err)

	_, err = newTestDomains().relationshipRepo.Get(ctx, testutil.CharacterC.ID, testutil.CharacterA.ID)
	require.NoError(t, err)
}
