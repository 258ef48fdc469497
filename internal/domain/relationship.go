package domain

import (
	"context"

	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
)

// RelationshipDomain exposes the relationship graph. Every operation is reserved to the
// admins and the MJs of the campaign.
type RelationshipDomain interface {
	GetKnown(context.Context, *model.GetKnownCharactersRequest) (*model.GetKnownCharactersResponse, error)
	GetCandidates(context.Context, *model.GetRelationshipCandidatesRequest) (*model.GetRelationshipCandidatesResponse, error)
	AddKnown(context.Context, *model.AddKnownCharacterRequest) (*model.AddKnownCharacterResponse, error)
	RemoveKnown(context.Context, *model.RemoveKnownCharacterRequest) (*model.RemoveKnownCharacterResponse, error)
	UpsertStars(context.Context, *model.UpsertRelationshipStarsRequest) (*model.UpsertRelationshipStarsResponse, error)
}

type relationshipDomain struct {
	relationshipRepo repository.CharacterRelationshipRepository
	characterRepo    repository.CharacterRepository
	roleResolver     *common.CampaignRoleResolver
}

func NewRelationshipDomain(
	relationshipRepo repository.CharacterRelationshipRepository,
	characterRepo repository.CharacterRepository,
	roleResolver *common.CampaignRoleResolver,
) RelationshipDomain {
	return &relationshipDomain{
		relationshipRepo: relationshipRepo,
		characterRepo:    characterRepo,
		roleResolver:     roleResolver,
	}
}

func (d *relationshipDomain) GetKnown(
	ctx context.Context, req *model.GetKnownCharactersRequest,
) (*model.GetKnownCharactersResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := validateID("character_id", req.CharacterID); err != nil {
		return nil, err
	}

	edges, err := d.getOutgoing(ctx, req.CampaignID, req.CharacterID)
	if err != nil {
		return nil, err
	}

	result := []model.KnownCharacter{}
	for i := range edges {
		result = append(result, model.KnownCharacter{
			MiniCard:          convertMiniCard(&edges[i].ToCharacter),
			Type:              string(edges[i].Type),
			AffinityScore:     edges[i].AffinityScore,
			RelationshipStars: edges[i].Stars(),
		})
	}

	return &model.GetKnownCharactersResponse{Characters: result}, nil
}

func (d *relationshipDomain) GetCandidates(
	ctx context.Context, req *model.GetRelationshipCandidatesRequest,
) (*model.GetRelationshipCandidatesResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := validateID("character_id", req.CharacterID); err != nil {
		return nil, err
	}

	edges, err := d.getOutgoing(ctx, req.CampaignID, req.CharacterID)
	if err != nil {
		return nil, err
	}

	excluded := map[string]struct{}{req.CharacterID: {}}
	for _, edge := range edges {
		excluded[edge.ToCharacterID] = struct{}{}
	}

	characters, err := d.characterRepo.GetActiveListByCampaignID(ctx, req.CampaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get characters of campaign: %v", err)
		return nil, errorx.Unknown
	}

	candidates := []model.MiniCard{}
	for i := range characters {
		if _, ok := excluded[characters[i].ID]; ok {
			continue
		}

		candidates = append(candidates, convertMiniCard(&characters[i]))
	}

	return &model.GetRelationshipCandidatesResponse{Characters: candidates}, nil
}

// AddKnown makes both characters know each other. New edges start at a zero score, existing
// edges only change their type.
func (d *relationshipDomain) AddKnown(
	ctx context.Context, req *model.AddKnownCharacterRequest,
) (*model.AddKnownCharacterResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := d.validatePair(ctx, req.CampaignID, req.FromCharacterID, req.ToCharacterID); err != nil {
		return nil, err
	}

	relType := entity.NormalizeRelationshipType(req.Type)
	if err := d.relationshipRepo.UpsertMutual(ctx, req.FromCharacterID, req.ToCharacterID, relType); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert mutual relationship: %v", err)
		return nil, errorx.Unknown
	}

	return &model.AddKnownCharacterResponse{}, nil
}

// RemoveKnown only deletes the from -> to direction.
func (d *relationshipDomain) RemoveKnown(
	ctx context.Context, req *model.RemoveKnownCharacterRequest,
) (*model.RemoveKnownCharacterResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := d.validatePair(ctx, req.CampaignID, req.FromCharacterID, req.ToCharacterID); err != nil {
		return nil, err
	}

	if err := d.relationshipRepo.Delete(ctx, req.FromCharacterID, req.ToCharacterID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete relationship: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RemoveKnownCharacterResponse{}, nil
}

// UpsertStars writes the upper score of the stars bucket on the from -> to edge only.
func (d *relationshipDomain) UpsertStars(
	ctx context.Context, req *model.UpsertRelationshipStarsRequest,
) (*model.UpsertRelationshipStarsResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if req.RelationshipStars == nil ||
		*req.RelationshipStars < 0 || *req.RelationshipStars > entity.MaxStars {
		return nil, errorx.New(errorx.BadRequest, "relationshipStars must be between 0 and %d", entity.MaxStars)
	}

	if err := d.validatePair(ctx, req.CampaignID, req.FromCharacterID, req.ToCharacterID); err != nil {
		return nil, err
	}

	score := entity.StarsToScore(*req.RelationshipStars)
	if err := d.relationshipRepo.UpsertScore(ctx, req.FromCharacterID, req.ToCharacterID, score); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert relationship score: %v", err)
		return nil, errorx.Unknown
	}

	edge, err := d.relationshipRepo.Get(ctx, req.FromCharacterID, req.ToCharacterID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read back relationship: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpsertRelationshipStarsResponse{Relationship: convertRelationship(edge)}, nil
}

func (d *relationshipDomain) getOutgoing(
	ctx context.Context, campaignID, characterID string,
) ([]entity.CharacterRelationship, error) {
	if _, err := getCampaignCharacter(ctx, d.characterRepo, campaignID, characterID); err != nil {
		return nil, err
	}

	edges, err := d.relationshipRepo.GetOutgoing(ctx, characterID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get outgoing relationships: %v", err)
		return nil, errorx.Unknown
	}

	result := []entity.CharacterRelationship{}
	for _, edge := range edges {
		if edge.ToCharacter.CampaignID.String == campaignID {
			result = append(result, edge)
		}
	}

	return result, nil
}

// validatePair checks ids, self reference and that both ends are active characters of the
// campaign.
func (d *relationshipDomain) validatePair(ctx context.Context, campaignID, fromID, toID string) error {
	if err := validateID("fromCharacterId", fromID); err != nil {
		return err
	}

	if err := validateID("toCharacterId", toID); err != nil {
		return err
	}

	if fromID == toID {
		return errorx.New(errorx.BadRequest, "A character cannot know itself")
	}

	if _, err := getCampaignCharacter(ctx, d.characterRepo, campaignID, fromID); err != nil {
		return err
	}

	if _, err := getCampaignCharacter(ctx, d.characterRepo, campaignID, toID); err != nil {
		return err
	}

	return nil
}
