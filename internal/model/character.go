package model

type GetCharacterRequest struct {
	CampaignID  string `json:"campaign_id" form:"campaign_id"`
	CharacterID string `json:"character_id" form:"character_id"`
}

type GetCharacterResponse struct {
	Character CharacterDetail `json:"character"`
}

type GetCharacterCardsRequest struct {
	CampaignID string `json:"campaign_id" form:"campaign_id"`
}

type GetCharacterCardsResponse struct {
	Characters []MiniCard `json:"characters"`
}

type GetTrashedCharactersRequest struct {
	CampaignID string `json:"campaign_id" form:"campaign_id"`
}

type GetTrashedCharactersResponse struct {
	Characters []TrashedCharacter `json:"characters"`
}

type SkillValue struct {
	SkillID string `json:"skillId"`
	Level   int    `json:"level"`
}

type CreateCharacterRequest struct {
	CampaignID string `json:"campaign_id"`
	LocationID string `json:"locationId"`
	// OwnerID is ignored unless IsPlayer, players creating their own character always own it.
	OwnerID string `json:"ownerId"`

	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Nickname  string `json:"nickname"`
	Age       int    `json:"age"`
	Clan      string `json:"clan"`

	Biography  string `json:"biography"`
	Strengths  string `json:"strengths"`
	Weaknesses string `json:"weaknesses"`

	AvatarURL          string `json:"avatarUrl"`
	TransitionVideoURL string `json:"transitionVideoUrl"`
	IsPlayer           bool   `json:"isPlayer"`

	Attributes *CharacterAttributes `json:"attributes"`
	Skills     []SkillValue         `json:"skills"`
}

type CreateCharacterResponse struct {
	ID string `json:"id"`
}

// UpdateCharacterRequest only changes the fields which are present in the request.
type UpdateCharacterRequest struct {
	CampaignID  string `json:"campaign_id" structs:"-"`
	CharacterID string `json:"character_id" structs:"-"`

	// An empty string moves the character out of any location.
	LocationID *string `json:"locationId" structs:"-"`

	Firstname *string `json:"firstname" structs:"firstname,omitempty"`
	Lastname  *string `json:"lastname" structs:"lastname,omitempty"`
	Nickname  *string `json:"nickname" structs:"nickname,omitempty"`
	Age       *int    `json:"age" structs:"age,omitempty"`
	Clan      *string `json:"clan" structs:"clan,omitempty"`

	Biography  *string `json:"biography" structs:"biography,omitempty"`
	Strengths  *string `json:"strengths" structs:"strengths,omitempty"`
	Weaknesses *string `json:"weaknesses" structs:"weaknesses,omitempty"`

	AvatarURL          *string `json:"avatarUrl" structs:"avatar_url,omitempty"`
	TransitionVideoURL *string `json:"transitionVideoUrl" structs:"transition_video_url,omitempty"`

	Attributes *CharacterAttributes `json:"attributes" structs:"-"`
	Skills     []SkillValue         `json:"skills" structs:"-"`
}

type UpdateCharacterResponse struct{}

type TrashCharacterRequest struct {
	CampaignID  string `json:"campaign_id"`
	CharacterID string `json:"character_id"`
}

type TrashCharacterResponse struct{}

type RestoreCharacterRequest struct {
	CampaignID  string `json:"campaign_id"`
	CharacterID string `json:"character_id"`
}

type RestoreCharacterResponse struct{}

type DestroyCharacterRequest struct {
	CampaignID  string `json:"campaign_id"`
	CharacterID string `json:"character_id"`
}

type DestroyCharacterResponse struct{}
