package model

type GetAnalyticsRequest struct{}

type TopCampaign struct {
	Campaign     Campaign `json:"campaign"`
	Participants int64    `json:"participants"`
}

type GetAnalyticsResponse struct {
	TotalUsers        int64   `json:"total_users"`
	ActiveUsers       int64   `json:"active_users"`
	TotalCampaigns    int64   `json:"total_campaigns"`
	TotalPosts        int64   `json:"total_posts"`
	TotalParticipants int64   `json:"total_participants"`
	TotalEarning      float64 `json:"total_earning"`
	TotalDeposit      float64 `json:"total_deposit"`

	TopCampaigns []TopCampaign `json:"top_campaigns"`
}
