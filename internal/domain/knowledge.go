package domain

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/enum"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type KnowledgeDomain interface {
	Grant(context.Context, *model.GrantKnowledgeRequest) (*model.GrantKnowledgeResponse, error)
	Revoke(context.Context, *model.RevokeKnowledgeRequest) (*model.RevokeKnowledgeResponse, error)
	GetByCharacter(context.Context, *model.GetCharacterKnowledgeRequest) (*model.GetCharacterKnowledgeResponse, error)
}

type knowledgeDomain struct {
	knowledgeRepo repository.CharacterKnowledgeRepository
	characterRepo repository.CharacterRepository
	userRepo      repository.UserRepository
	roleResolver  *common.CampaignRoleResolver
}

func NewKnowledgeDomain(
	knowledgeRepo repository.CharacterKnowledgeRepository,
	characterRepo repository.CharacterRepository,
	userRepo repository.UserRepository,
	roleResolver *common.CampaignRoleResolver,
) KnowledgeDomain {
	return &knowledgeDomain{
		knowledgeRepo: knowledgeRepo,
		characterRepo: characterRepo,
		userRepo:      userRepo,
		roleResolver:  roleResolver,
	}
}

func (d *knowledgeDomain) Grant(
	ctx context.Context, req *model.GrantKnowledgeRequest,
) (*model.GrantKnowledgeResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := validateID("viewerId", req.ViewerID); err != nil {
		return nil, err
	}

	if err := validateID("characterId", req.CharacterID); err != nil {
		return nil, err
	}

	field, err := enum.ToEnum[entity.DisclosableField](req.Field)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid field")
	}

	level := entity.KnowledgeFull
	if req.KnowledgeLevel != "" {
		level, err = enum.ToEnum[entity.KnowledgeLevel](req.KnowledgeLevel)
		if err != nil {
			return nil, errorx.New(errorx.BadRequest, "Invalid knowledgeLevel")
		}
	}

	character, err := getCampaignCharacter(ctx, d.characterRepo, req.CampaignID, req.CharacterID)
	if err != nil {
		return nil, err
	}

	if _, err := d.userRepo.GetByID(ctx, req.ViewerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Viewer not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get viewer: %v", err)
		return nil, errorx.Unknown
	}

	grant := &entity.CharacterKnowledge{
		ViewerID:    req.ViewerID,
		CharacterID: character.ID,
		Field:       field,
		Level:       level,
	}
	if req.Notes != nil {
		grant.Notes = sql.NullString{Valid: true, String: *req.Notes}
	}

	if err := d.knowledgeRepo.Upsert(ctx, grant); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot upsert knowledge: %v", err)
		return nil, errorx.Unknown
	}

	saved, err := d.knowledgeRepo.Get(ctx, grant.ViewerID, grant.CharacterID, grant.Field)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot read back knowledge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GrantKnowledgeResponse{KnowledgeGrant: convertKnowledgeGrant(saved)}, nil
}

// Revoke succeeds when the grant does not exist, but not when the character does not.
func (d *knowledgeDomain) Revoke(
	ctx context.Context, req *model.RevokeKnowledgeRequest,
) (*model.RevokeKnowledgeResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := validateID("viewerId", req.ViewerID); err != nil {
		return nil, err
	}

	if err := validateID("characterId", req.CharacterID); err != nil {
		return nil, err
	}

	field, err := enum.ToEnum[entity.DisclosableField](req.Field)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid field")
	}

	character, err := getCampaignCharacter(ctx, d.characterRepo, req.CampaignID, req.CharacterID)
	if err != nil {
		return nil, err
	}

	if err := d.knowledgeRepo.Delete(ctx, req.ViewerID, character.ID, field); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete knowledge: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RevokeKnowledgeResponse{}, nil
}

func (d *knowledgeDomain) GetByCharacter(
	ctx context.Context, req *model.GetCharacterKnowledgeRequest,
) (*model.GetCharacterKnowledgeResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := validateID("character_id", req.CharacterID); err != nil {
		return nil, err
	}

	character, err := getCampaignCharacter(ctx, d.characterRepo, req.CampaignID, req.CharacterID)
	if err != nil {
		return nil, err
	}

	grants, err := d.knowledgeRepo.GetListByCharacterID(ctx, character.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get knowledge of character: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.KnowledgeGrant{}
	for i := range grants {
		result = append(result, convertKnowledgeGrant(&grants[i]))
	}

	return &model.GetCharacterKnowledgeResponse{Grants: result}, nil
}
