package model

type GetCampaignsRequest struct {
	Q        string `json:"q"`
	Type     string `json:"type"`
	Category string `json:"category"`
	Status   string `json:"status"`
	Offset   int    `json:"offset"`
	Limit    int    `json:"limit"`
}

type GetCampaignsResponse struct {
	Campaigns []Campaign `json:"campaigns"`
}

type GetCampaignRequest struct {
	ID string `json:"id"`
}

type GetCampaignResponse Campaign

type JoinCampaignRequest struct {
	CampaignID string `json:"campaign_id"`
}

type JoinCampaignResponse struct {
	Status string `json:"status"`
}

type GetCampaignUpdatesRequest struct {
	CampaignID string `json:"campaign_id"`
	Offset     int    `json:"offset"`
	Limit      int    `json:"limit"`
}

type GetCampaignUpdatesResponse struct {
	Updates []CampaignUpdate `json:"updates"`
}

// Admin operations

type CreateCampaignRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	Rules    string `json:"rules"`

	Budget         float64 `json:"budget"`
	RewardPerKView float64 `json:"reward_per_k_view"`
	MinPayout      float64 `json:"min_payout"`
	MaxPayout      float64 `json:"max_payout"`

	Type      string `json:"type"`
	Category  string `json:"category"`
	IsPrivate bool   `json:"is_private"`

	Channels []Channel `json:"channels"`
}

type CreateCampaignResponse struct {
	ID string `json:"id"`
}

// UpdateCampaignRequest carries numeric fields as strings. A field which is
// empty or fails to parse is skipped rather than zeroing the column.
type UpdateCampaignRequest struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	PhotoURL string `json:"photo_url"`
	Rules    string `json:"rules"`

	Budget         string `json:"budget"`
	RewardPerKView string `json:"reward_per_k_view"`
	MinPayout      string `json:"min_payout"`
	MaxPayout      string `json:"max_payout"`

	Type      string `json:"type"`
	Category  string `json:"category"`
	Status    string `json:"status"`
	IsPrivate *bool  `json:"is_private"`

	Channels []Channel `json:"channels"`
}

type UpdateCampaignResponse struct {
	Campaign Campaign `json:"campaign"`
}

type DeleteCampaignRequest struct {
	ID string `json:"id"`
}

type DeleteCampaignResponse struct{}

type GetCampaignMembersRequest struct {
	CampaignID string `json:"campaign_id"`
	Status     string `json:"status"`
}

type CampaignMember struct {
	User     ShortUser `json:"user"`
	Status   string    `json:"status"`
	JoinedAt string    `json:"joined_at"`
}

type GetCampaignMembersResponse struct {
	Members []CampaignMember `json:"members"`
}

type ApproveCampaignMemberRequest struct {
	CampaignID string `json:"campaign_id"`
	UserID     string `json:"user_id"`
}

type ApproveCampaignMemberResponse struct{}

type CreateCampaignUpdateRequest struct {
	CampaignID string `json:"campaign_id"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

type CreateCampaignUpdateResponse struct {
	ID string `json:"id"`
}
