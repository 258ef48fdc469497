package model

type CreateLocationRequest struct {
	CampaignID  string `json:"campaign_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

type CreateLocationResponse struct {
	ID string `json:"id"`
}

type GetLocationsRequest struct {
	CampaignID string `json:"campaign_id" form:"campaign_id"`
}

type GetLocationsResponse struct {
	Locations []Location `json:"locations"`
}
