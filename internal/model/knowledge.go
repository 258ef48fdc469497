package model

type GrantKnowledgeRequest struct {
	CampaignID  string `json:"campaign_id"`
	ViewerID    string `json:"viewerId"`
	CharacterID string `json:"characterId"`
	Field       string `json:"field"`
	// KnowledgeLevel defaults to full.
	KnowledgeLevel string  `json:"knowledgeLevel"`
	Notes          *string `json:"notes"`
}

type GrantKnowledgeResponse struct {
	KnowledgeGrant
}

type RevokeKnowledgeRequest struct {
	CampaignID  string `json:"campaign_id"`
	ViewerID    string `json:"viewerId"`
	CharacterID string `json:"characterId"`
	Field       string `json:"field"`
}

type RevokeKnowledgeResponse struct{}

type GetCharacterKnowledgeRequest struct {
	CampaignID  string `json:"campaign_id" form:"campaign_id"`
	CharacterID string `json:"character_id" form:"character_id"`
}

type GetCharacterKnowledgeResponse struct {
	Grants []KnowledgeGrant `json:"grants"`
}
