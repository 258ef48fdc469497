package domain

import (
	"time"

	"github.com/lorekeeper-lab/backend/internal/entity"
	"github.com/lorekeeper-lab/backend/internal/model"
)

const defaultTimeLayout string = time.RFC3339Nano

func convertUserSummary(user *entity.User) model.UserSummary {
	if user == nil {
		return model.UserSummary{}
	}

	return model.UserSummary{
		ID:       user.ID,
		Username: user.Username,
		Email:    user.Email,
	}
}

func convertMiniCard(character *entity.Character) model.MiniCard {
	if character == nil {
		return model.MiniCard{}
	}

	return model.MiniCard{
		ID:        character.ID,
		Nickname:  character.Nickname,
		Firstname: character.Firstname,
		Lastname:  character.Lastname,
		Age:       character.Age,
		AvatarURL: character.AvatarURL,
		Clan:      character.Clan,
		IsPlayer:  character.IsPlayer,
	}
}

func convertMiniCards(characters []entity.Character) []model.MiniCard {
	cards := []model.MiniCard{}
	for i := range characters {
		cards = append(cards, convertMiniCard(&characters[i]))
	}

	return cards
}

func convertRelationship(edge *entity.CharacterRelationship) model.Relationship {
	return model.Relationship{
		FromCharacterID:   edge.FromCharacterID,
		ToCharacterID:     edge.ToCharacterID,
		Type:              string(edge.Type),
		AffinityScore:     edge.AffinityScore,
		RelationshipStars: edge.Stars(),
	}
}

func convertKnowledgeGrant(grant *entity.CharacterKnowledge) model.KnowledgeGrant {
	result := model.KnowledgeGrant{
		ViewerID:       grant.ViewerID,
		CharacterID:    grant.CharacterID,
		Field:          string(grant.Field),
		KnowledgeLevel: string(grant.Level),
		UpdatedAt:      grant.UpdatedAt.Format(defaultTimeLayout),
	}

	if grant.Notes.Valid {
		notes := grant.Notes.String
		result.Notes = &notes
	}

	if grant.Viewer.ID != "" {
		viewer := convertUserSummary(&grant.Viewer)
		result.Viewer = &viewer
	}

	return result
}

func convertCampaign(campaign *entity.Campaign, members []entity.CampaignMember) model.Campaign {
	result := model.Campaign{
		ID:        campaign.ID,
		Title:     campaign.Title,
		Theme:     campaign.Theme,
		JoinCode:  campaign.JoinCode,
		CreatedBy: campaign.CreatedBy,
		CreatedAt: campaign.CreatedAt.Format(defaultTimeLayout),
	}

	for i := range members {
		result.Members = append(result.Members, model.CampaignMember{
			User: convertUserSummary(&members[i].User),
			Role: string(members[i].Role),
		})
	}

	return result
}

func convertLocation(location *entity.Location) model.Location {
	return model.Location{
		ID:          location.ID,
		CampaignID:  location.CampaignID,
		Name:        location.Name,
		Description: location.Description,
	}
}

func convertSkill(skill *entity.Skill) model.Skill {
	return model.Skill{
		ID:              skill.ID,
		Name:            skill.Name,
		ParentAttribute: string(skill.ParentAttribute),
	}
}
