package model

type GetSkillsRequest struct{}

type GetSkillsResponse struct {
	Skills []Skill `json:"skills"`
}
