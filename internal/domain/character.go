package domain

import (
	"context"
	"database/sql"
	"errors"
	"reflect"
	"strings"

	"github.com/fatih/structs"
	"github.com/google/uuid"
	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
	"gorm.io/gorm"
)

type CharacterDomain interface {
	Get(context.Context, *model.GetCharacterRequest) (*model.GetCharacterResponse, error)
	GetCards(context.Context, *model.GetCharacterCardsRequest) (*model.GetCharacterCardsResponse, error)
	GetTrashed(context.Context, *model.GetTrashedCharactersRequest) (*model.GetTrashedCharactersResponse, error)
	Create(context.Context, *model.CreateCharacterRequest) (*model.CreateCharacterResponse, error)
	Update(context.Context, *model.UpdateCharacterRequest) (*model.UpdateCharacterResponse, error)
	Trash(context.Context, *model.TrashCharacterRequest) (*model.TrashCharacterResponse, error)
	Restore(context.Context, *model.RestoreCharacterRequest) (*model.RestoreCharacterResponse, error)
	Destroy(context.Context, *model.DestroyCharacterRequest) (*model.DestroyCharacterResponse, error)
}

type characterDomain struct {
	characterRepo    repository.CharacterRepository
	knowledgeRepo    repository.CharacterKnowledgeRepository
	relationshipRepo repository.CharacterRelationshipRepository
	locationRepo     repository.LocationRepository
	skillRepo        repository.SkillRepository
	memberRepo       repository.CampaignMemberRepository
	roleResolver     *common.CampaignRoleResolver
	disclosure       *CharacterDisclosure
}

func NewCharacterDomain(
	characterRepo repository.CharacterRepository,
	knowledgeRepo repository.CharacterKnowledgeRepository,
	relationshipRepo repository.CharacterRelationshipRepository,
	locationRepo repository.LocationRepository,
	skillRepo repository.SkillRepository,
	memberRepo repository.CampaignMemberRepository,
	roleResolver *common.CampaignRoleResolver,
) CharacterDomain {
	return &characterDomain{
		characterRepo:    characterRepo,
		knowledgeRepo:    knowledgeRepo,
		relationshipRepo: relationshipRepo,
		locationRepo:     locationRepo,
		skillRepo:        skillRepo,
		memberRepo:       memberRepo,
		roleResolver:     roleResolver,
		disclosure:       NewCharacterDisclosure(knowledgeRepo),
	}
}

func (d *characterDomain) Get(
	ctx context.Context, req *model.GetCharacterRequest,
) (*model.GetCharacterResponse, error) {
	role, err := d.roleResolver.Require(ctx, req.CampaignID, common.AnyMember...)
	if err != nil {
		return nil, err
	}

	if err := validateID("character_id", req.CharacterID); err != nil {
		return nil, err
	}

	character, err := getCampaignCharacter(ctx, d.characterRepo, req.CampaignID, req.CharacterID)
	if err != nil {
		return nil, err
	}

	detail, err := d.disclosure.View(ctx, role, xcontext.RequestUserID(ctx), character)
	if err != nil {
		return nil, err
	}

	return &model.GetCharacterResponse{Character: *detail}, nil
}

func (d *characterDomain) GetCards(
	ctx context.Context, req *model.GetCharacterCardsRequest,
) (*model.GetCharacterCardsResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AnyMember...); err != nil {
		return nil, err
	}

	characters, err := d.characterRepo.GetActiveListByCampaignID(ctx, req.CampaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get characters of campaign: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCharacterCardsResponse{Characters: convertMiniCards(characters)}, nil
}

func (d *characterDomain) GetTrashed(
	ctx context.Context, req *model.GetTrashedCharactersRequest,
) (*model.GetTrashedCharactersResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	characters, err := d.characterRepo.GetTrashedListByCampaignID(ctx, req.CampaignID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get trashed characters: %v", err)
		return nil, errorx.Unknown
	}

	result := []model.TrashedCharacter{}
	for i := range characters {
		result = append(result, model.TrashedCharacter{
			MiniCard:  convertMiniCard(&characters[i]),
			DeletedAt: characters[i].DeletedAt.Time.Format(defaultTimeLayout),
		})
	}

	return &model.GetTrashedCharactersResponse{Characters: result}, nil
}

func (d *characterDomain) Create(
	ctx context.Context, req *model.CreateCharacterRequest,
) (*model.CreateCharacterResponse, error) {
	role, err := d.roleResolver.Require(ctx, req.CampaignID, common.AnyMember...)
	if err != nil {
		return nil, err
	}

	character := &entity.Character{
		Base:               entity.Base{ID: uuid.NewString()},
		CampaignID:         sql.NullString{Valid: true, String: req.CampaignID},
		Firstname:          strings.TrimSpace(req.Firstname),
		Lastname:           strings.TrimSpace(req.Lastname),
		Nickname:           strings.TrimSpace(req.Nickname),
		Age:                req.Age,
		Clan:               req.Clan,
		Biography:          req.Biography,
		Strengths:          req.Strengths,
		Weaknesses:         req.Weaknesses,
		AvatarURL:          req.AvatarURL,
		TransitionVideoURL: req.TransitionVideoURL,
		IsPlayer:           req.IsPlayer,
	}

	if character.Firstname == "" {
		return nil, errorx.New(errorx.BadRequest, "Required firstname")
	}

	if character.Age < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid age")
	}

	if role == common.RolePlayer {
		// Self-service: a player only creates their own character, without mechanical stats.
		if req.Attributes != nil || len(req.Skills) > 0 {
			xcontext.Logger(ctx).Debugf("Player tried to set mechanical stats")
			return nil, errorx.New(errorx.PermissionDenied, "Admin/MJ only")
		}

		character.IsPlayer = true
		character.OwnerID = sql.NullString{Valid: true, String: xcontext.RequestUserID(ctx)}
	} else if req.IsPlayer && req.OwnerID != "" {
		if err := d.validateOwner(ctx, req.CampaignID, req.OwnerID); err != nil {
			return nil, err
		}

		character.OwnerID = sql.NullString{Valid: true, String: req.OwnerID}
	}

	if req.LocationID != "" {
		if err := d.validateLocation(ctx, req.CampaignID, req.LocationID); err != nil {
			return nil, err
		}

		character.LocationID = sql.NullString{Valid: true, String: req.LocationID}
	}

	attributes := &entity.CharacterAttributes{CharacterID: character.ID}
	if req.Attributes != nil {
		if err := validateAttributes(req.Attributes); err != nil {
			return nil, err
		}

		attributes.Strength = req.Attributes.Strength
		attributes.Agility = req.Attributes.Agility
		attributes.Wits = req.Attributes.Wits
		attributes.Empathy = req.Attributes.Empathy
	}

	skillValues, err := d.convertSkillValues(ctx, character.ID, req.Skills)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	if err := d.characterRepo.Create(ctx, character); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create character: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.characterRepo.UpsertAttributes(ctx, attributes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create character attributes: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.characterRepo.UpsertSkillValues(ctx, skillValues); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create character skills: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit character creation: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCharacterResponse{ID: character.ID}, nil
}

func (d *characterDomain) Update(
	ctx context.Context, req *model.UpdateCharacterRequest,
) (*model.UpdateCharacterResponse, error) {
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

	// Absent fields are nil pointers and are dropped by omitempty.
	changes := structs.Map(req)
	for key, value := range changes {
		changes[key] = reflect.Indirect(reflect.ValueOf(value)).Interface()
	}

	if value, ok := changes["firstname"]; ok {
		firstname := strings.TrimSpace(value.(string))
		if firstname == "" {
			return nil, errorx.New(errorx.BadRequest, "Required firstname")
		}

		changes["firstname"] = firstname
	}

	if age, ok := changes["age"]; ok && age.(int) < 0 {
		return nil, errorx.New(errorx.BadRequest, "Invalid age")
	}

	if req.LocationID != nil {
		if *req.LocationID == "" {
			changes["location_id"] = sql.NullString{}
		} else {
			if err := d.validateLocation(ctx, req.CampaignID, *req.LocationID); err != nil {
				return nil, err
			}

			changes["location_id"] = sql.NullString{Valid: true, String: *req.LocationID}
		}
	}

	if req.Attributes != nil {
		if err := validateAttributes(req.Attributes); err != nil {
			return nil, err
		}
	}

	skillValues, err := d.convertSkillValues(ctx, character.ID, req.Skills)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	if err := d.characterRepo.UpdateByID(ctx, character.ID, changes); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update character: %v", err)
		return nil, errorx.Unknown
	}

	if req.Attributes != nil {
		err := d.characterRepo.UpsertAttributes(ctx, &entity.CharacterAttributes{
			CharacterID: character.ID,
			Strength:    req.Attributes.Strength,
			Agility:     req.Attributes.Agility,
			Wits:        req.Attributes.Wits,
			Empathy:     req.Attributes.Empathy,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update character attributes: %v", err)
			return nil, errorx.Unknown
		}
	}

	if err := d.characterRepo.UpsertSkillValues(ctx, skillValues); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update character skills: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit character update: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateCharacterResponse{}, nil
}

func (d *characterDomain) Trash(
	ctx context.Context, req *model.TrashCharacterRequest,
) (*model.TrashCharacterResponse, error) {
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

	if err := d.characterRepo.Trash(ctx, character.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot trash character: %v", err)
		return nil, errorx.Unknown
	}

	return &model.TrashCharacterResponse{}, nil
}

func (d *characterDomain) Restore(
	ctx context.Context, req *model.RestoreCharacterRequest,
) (*model.RestoreCharacterResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := validateID("character_id", req.CharacterID); err != nil {
		return nil, err
	}

	character, err := d.getTrashedCharacter(ctx, req.CampaignID, req.CharacterID)
	if err != nil {
		return nil, err
	}

	if err := d.characterRepo.Restore(ctx, character.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot restore character: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RestoreCharacterResponse{}, nil
}

// Destroy only accepts characters which are already in the trash. Knowledge grants and
// relationship edges pointing at the character go away in the same transaction.
func (d *characterDomain) Destroy(
	ctx context.Context, req *model.DestroyCharacterRequest,
) (*model.DestroyCharacterResponse, error) {
	if _, err := d.roleResolver.Require(ctx, req.CampaignID, common.AdminOrOwner...); err != nil {
		return nil, err
	}

	if err := validateID("character_id", req.CharacterID); err != nil {
		return nil, err
	}

	character, err := d.getTrashedCharacter(ctx, req.CampaignID, req.CharacterID)
	if err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.RollbackDBTransaction(ctx)

	if err := d.knowledgeRepo.DeleteByCharacterID(ctx, character.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete knowledge of character: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.relationshipRepo.DeleteByCharacterID(ctx, character.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot delete relationships of character: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.characterRepo.Destroy(ctx, character.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot destroy character: %v", err)
		return nil, errorx.Unknown
	}

	if err := xcontext.CommitDBTransaction(ctx); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot commit character destruction: %v", err)
		return nil, errorx.Unknown
	}

	return &model.DestroyCharacterResponse{}, nil
}

func (d *characterDomain) getTrashedCharacter(
	ctx context.Context, campaignID, characterID string,
) (*entity.Character, error) {
	character, err := d.characterRepo.GetTrashedByID(ctx, characterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Character not found in trash")
		}

		xcontext.Logger(ctx).Errorf("Cannot get trashed character: %v", err)
		return nil, errorx.Unknown
	}

	if character.CampaignID.String != campaignID {
		return nil, errorx.New(errorx.NotFound, "Character not found in trash")
	}

	return character, nil
}

func (d *characterDomain) validateOwner(ctx context.Context, campaignID, ownerID string) error {
	if err := validateID("ownerId", ownerID); err != nil {
		return err
	}

	if _, err := d.memberRepo.Get(ctx, campaignID, ownerID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.BadRequest, "Owner is not a campaign member")
		}

		xcontext.Logger(ctx).Errorf("Cannot get campaign member: %v", err)
		return errorx.Unknown
	}

	return nil
}

func (d *characterDomain) validateLocation(ctx context.Context, campaignID, locationID string) error {
	if err := validateID("locationId", locationID); err != nil {
		return err
	}

	location, err := d.locationRepo.GetByID(ctx, locationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errorx.New(errorx.NotFound, "Location not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get location: %v", err)
		return errorx.Unknown
	}

	if location.CampaignID != campaignID {
		return errorx.New(errorx.NotFound, "Location not found")
	}

	return nil
}

func validateAttributes(attributes *model.CharacterAttributes) error {
	for _, value := range []int{
		attributes.Strength, attributes.Agility, attributes.Wits, attributes.Empathy,
	} {
		if value < 0 || value > entity.MaxAttributeValue {
			return errorx.New(errorx.BadRequest, "Attributes must be between 0 and %d", entity.MaxAttributeValue)
		}
	}

	return nil
}

func (d *characterDomain) convertSkillValues(
	ctx context.Context, characterID string, values []model.SkillValue,
) ([]entity.CharacterSkillValue, error) {
	if len(values) == 0 {
		return nil, nil
	}

	ids := []string{}
	result := []entity.CharacterSkillValue{}
	for _, value := range values {
		if value.Level < 0 || value.Level > entity.MaxSkillLevel {
			return nil, errorx.New(errorx.BadRequest, "Skill level must be between 0 and %d", entity.MaxSkillLevel)
		}

		if slices.Contains(ids, value.SkillID) {
			return nil, errorx.New(errorx.BadRequest, "Duplicated skillId")
		}

		ids = append(ids, value.SkillID)
		result = append(result, entity.CharacterSkillValue{
			CharacterID: characterID,
			SkillID:     value.SkillID,
			Level:       value.Level,
		})
	}

	skills, err := d.skillRepo.GetByIDs(ctx, ids)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get skills: %v", err)
		return nil, errorx.Unknown
	}

	if len(skills) != len(ids) {
		return nil, errorx.New(errorx.BadRequest, "Invalid skillId")
	}

	return result, nil
}
