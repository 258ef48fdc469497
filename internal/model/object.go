package model

type UserSummary struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type LocationSummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type CharacterAttributes struct {
	Strength int `json:"strength"`
	Agility  int `json:"agility"`
	Wits     int `json:"wits"`
	Empathy  int `json:"empathy"`
}

type CharacterSkill struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ParentAttribute string `json:"parentAttribute"`
	Level           int    `json:"level"`
}

// CharacterDetail is the disclosed view of a character. Owner and Location are always
// serialized, the sensitive fields only when the viewer may read them.
type CharacterDetail struct {
	ID                 string `json:"id"`
	Nickname           string `json:"nickname"`
	Firstname          string `json:"firstname"`
	Lastname           string `json:"lastname"`
	Age                int    `json:"age"`
	AvatarURL          string `json:"avatarUrl"`
	TransitionVideoURL string `json:"transitionVideoUrl"`
	IsPlayer           bool   `json:"isPlayer"`
	Clan               string `json:"clan"`

	Owner    *UserSummary     `json:"owner"`
	Location *LocationSummary `json:"location"`

	Biography  *string `json:"biography,omitempty"`
	Strengths  *string `json:"strengths,omitempty"`
	Weaknesses *string `json:"weaknesses,omitempty"`

	Attributes *CharacterAttributes `json:"attributes,omitempty"`
	Skills     *[]CharacterSkill    `json:"skills,omitempty"`
}

type MiniCard struct {
	ID        string `json:"id"`
	Nickname  string `json:"nickname"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Age       int    `json:"age"`
	AvatarURL string `json:"avatarUrl"`
	Clan      string `json:"clan"`
	IsPlayer  bool   `json:"isPlayer"`
}

type KnownCharacter struct {
	MiniCard
	Type              string `json:"type"`
	AffinityScore     int    `json:"affinityScore"`
	RelationshipStars int    `json:"relationshipStars"`
}

type TrashedCharacter struct {
	MiniCard
	DeletedAt string `json:"deletedAt"`
}

type KnowledgeGrant struct {
	ViewerID       string       `json:"viewerId"`
	Viewer         *UserSummary `json:"viewer,omitempty"`
	CharacterID    string       `json:"characterId"`
	Field          string       `json:"field"`
	KnowledgeLevel string       `json:"knowledgeLevel"`
	Notes          *string      `json:"notes"`
	UpdatedAt      string       `json:"updatedAt"`
}

type Relationship struct {
	FromCharacterID   string `json:"fromCharacterId"`
	ToCharacterID     string `json:"toCharacterId"`
	Type              string `json:"type"`
	AffinityScore     int    `json:"affinityScore"`
	RelationshipStars int    `json:"relationshipStars"`
}

type CampaignMember struct {
	User UserSummary `json:"user"`
	Role string      `json:"role"`
}

type Campaign struct {
	ID        string           `json:"id"`
	Title     string           `json:"title"`
	Theme     string           `json:"theme"`
	JoinCode  string           `json:"join_code"`
	CreatedBy string           `json:"created_by"`
	CreatedAt string           `json:"created_at"`
	Members   []CampaignMember `json:"members,omitempty"`
}

type Location struct {
	ID          string `json:"id"`
	CampaignID  string `json:"campaign_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type Skill struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ParentAttribute string `json:"parentAttribute"`
}
