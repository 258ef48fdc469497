package model

type GetKnownCharactersRequest struct {
	CampaignID  string `json:"campaign_id" form:"campaign_id"`
	CharacterID string `json:"character_id" form:"character_id"`
}

type GetKnownCharactersResponse struct {
	Characters []KnownCharacter `json:"characters"`
}

type GetRelationshipCandidatesRequest struct {
	CampaignID  string `json:"campaign_id" form:"campaign_id"`
	CharacterID string `json:"character_id" form:"character_id"`
}

type GetRelationshipCandidatesResponse struct {
	Characters []MiniCard `json:"characters"`
}

type AddKnownCharacterRequest struct {
	CampaignID      string `json:"campaign_id"`
	FromCharacterID string `json:"fromCharacterId"`
	ToCharacterID   string `json:"toCharacterId"`
	// Type is normalized, blank or unknown values become neutral.
	Type string `json:"type"`
}

type AddKnownCharacterResponse struct{}

type RemoveKnownCharacterRequest struct {
	CampaignID      string `json:"campaign_id"`
	FromCharacterID string `json:"fromCharacterId"`
	ToCharacterID   string `json:"toCharacterId"`
}

type RemoveKnownCharacterResponse struct{}

type UpsertRelationshipStarsRequest struct {
	CampaignID        string `json:"campaign_id"`
	FromCharacterID   string `json:"fromCharacterId"`
	ToCharacterID     string `json:"toCharacterId"`
	RelationshipStars *int   `json:"relationshipStars"`
}

type UpsertRelationshipStarsResponse struct {
	Relationship
}
