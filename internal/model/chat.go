package model

type ServeChannelRequest struct {
	CampaignID string `json:"campaign_id"`
	Channel    string `json:"channel"`
}

type ServeChannelResponse struct{}

type GetMessagesRequest struct {
	CampaignID string `json:"campaign_id"`
	Channel    string `json:"channel"`
	Before     int64  `json:"before"`
	Limit      int    `json:"limit"`
}

type GetMessagesResponse struct {
	Messages    []ChatMessage `json:"messages"`
	OnlineCount uint64        `json:"online_count"`
}
