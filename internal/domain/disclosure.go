package domain

import (
	"context"

	"github.com/lorekeeper-lab/backend/internal/common"
	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
	"github.com/lorekeeper-lab/backend/internal/repository"
	"github.com/lorekeeper-lab/backend/pkg/errorx"
	"github.com/lorekeeper-lab/backend/pkg/xcontext"
	"golang.org/x/exp/slices"
)

// CharacterDisclosure builds the view of a character a given viewer is allowed to see.
//
// Narrative fields (biography, strengths, weaknesses) are gated by knowledge grants, any grant
// level unlocking the whole field. Mechanical fields (attributes, skills) are gated by role only,
// so a player never sees them whatever the grants.
type CharacterDisclosure struct {
	knowledgeRepo repository.CharacterKnowledgeRepository
}

func NewCharacterDisclosure(knowledgeRepo repository.CharacterKnowledgeRepository) *CharacterDisclosure {
	return &CharacterDisclosure{knowledgeRepo: knowledgeRepo}
}

func (d *CharacterDisclosure) View(
	ctx context.Context,
	role common.Role,
	viewerID string,
	character *entity.Character,
) (*model.CharacterDetail, error) {
	if role == common.RoleNone {
		return nil, errorx.New(errorx.PermissionDenied, "Campaign members only")
	}

	detail := &model.CharacterDetail{
		ID:                 character.ID,
		Nickname:           character.Nickname,
		Firstname:          character.Firstname,
		Lastname:           character.Lastname,
		Age:                character.Age,
		AvatarURL:          character.AvatarURL,
		TransitionVideoURL: character.TransitionVideoURL,
		IsPlayer:           character.IsPlayer,
		Clan:               character.Clan,
	}

	// NPCs never disclose an owner, whoever is looking.
	if character.IsPlayer && character.OwnerID.Valid {
		owner := convertUserSummary(&character.Owner)
		owner.ID = character.OwnerID.String
		detail.Owner = &owner
	}

	if character.LocationID.Valid {
		detail.Location = &model.LocationSummary{
			ID:   character.LocationID.String,
			Name: character.Location.Name,
		}
	}

	if role.CanSeeEverything() {
		detail.Biography = &character.Biography
		detail.Strengths = &character.Strengths
		detail.Weaknesses = &character.Weaknesses
		detail.Attributes = &model.CharacterAttributes{
			Strength: character.Attributes.Strength,
			Agility:  character.Attributes.Agility,
			Wits:     character.Attributes.Wits,
			Empathy:  character.Attributes.Empathy,
		}

		skills := []model.CharacterSkill{}
		for _, value := range character.Skills {
			skills = append(skills, model.CharacterSkill{
				ID:              value.SkillID,
				Name:            value.Skill.Name,
				ParentAttribute: string(value.Skill.ParentAttribute),
				Level:           value.Level,
			})
		}
		detail.Skills = &skills

		return detail, nil
	}

	allowedFields, err := d.knowledgeRepo.GetAllowedFields(ctx, viewerID, character.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get allowed fields of character %s: %v", character.ID, err)
		return nil, errorx.Unknown
	}

	if slices.Contains(allowedFields, entity.FieldBiography) {
		detail.Biography = &character.Biography
	}

	if slices.Contains(allowedFields, entity.FieldStrengths) {
		detail.Strengths = &character.Strengths
	}

	if slices.Contains(allowedFields, entity.FieldWeaknesses) {
		detail.Weaknesses = &character.Weaknesses
	}

	return detail, nil
}
