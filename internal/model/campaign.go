package model

type CreateCampaignRequest struct {
	Title string `json:"title"`
	Theme string `json:"theme"`
}

type CreateCampaignResponse struct {
	ID       string `json:"id"`
	JoinCode string `json:"join_code"`
}

type JoinCampaignRequest struct {
	JoinCode string `json:"join_code"`
}

type JoinCampaignResponse struct {
	CampaignID string `json:"campaign_id"`
	Role       string `json:"role"`
}

type GetCampaignRequest struct {
	CampaignID string `json:"campaign_id" form:"campaign_id"`
}

type GetCampaignResponse struct {
	Campaign Campaign `json:"campaign"`
}

type GetMyCampaignsRequest struct{}

type GetMyCampaignsResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}
